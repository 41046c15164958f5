// Package worker provides background hydration of the local catalog cache.
package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

const jobTimeout = 60 * time.Second

// Job carries the track ids of a freshly materialized playlist whose
// metadata should be cached locally.
type Job struct {
	TrackIDs []string
}

// Pool manages background workers for catalog hydration jobs.
type Pool struct {
	platform ports.MusicPlatform
	catalog  ports.CatalogRepository
	jobs     chan Job
	wg       sync.WaitGroup
}

// NewPool creates a worker pool with the given queue size.
func NewPool(platform ports.MusicPlatform, catalog ports.CatalogRepository, queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{platform: platform, catalog: catalog, jobs: make(chan Job, queueSize)}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop waits for workers to finish after closing the queue.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Hydrate queues a hydration job without blocking. A full queue drops the
// job; the cache is best-effort and the platform remains the source of
// truth.
func (p *Pool) Hydrate(trackIDs []string) {
	if len(trackIDs) == 0 {
		return
	}
	select {
	case p.jobs <- Job{TrackIDs: trackIDs}:
	default:
		log.Printf("WARN worker: dropping hydration job for %d tracks", len(trackIDs))
	}
}

func (p *Pool) processJob(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	tracks, err := p.platform.GetTracks(ctx, job.TrackIDs)
	if err != nil {
		log.Printf("WARN worker: failed to fetch tracks: %v", err)
		return
	}
	if err := p.catalog.SaveTracks(ctx, tracks); err != nil {
		log.Printf("WARN worker: failed to cache tracks: %v", err)
		return
	}

	seen := make(map[string]struct{})
	var artistIDs []string
	for _, t := range tracks {
		for _, id := range t.ArtistIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			artistIDs = append(artistIDs, id)
		}
	}
	if len(artistIDs) == 0 {
		return
	}

	artists, err := p.platform.GetArtists(ctx, artistIDs)
	if err != nil {
		log.Printf("WARN worker: failed to fetch artists: %v", err)
		return
	}
	if err := p.catalog.SaveArtists(ctx, artists); err != nil {
		log.Printf("WARN worker: failed to cache artists: %v", err)
	}
}
