package main

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/anastasop/photostack"
)

// loadable is a photo whose pixels can be decoded and dropped again.
type loadable interface {
	Load() error
	Unload()
}

// keepPages is how many pages on each side of the top photo stay decoded.
const keepPages = 2

// photoCache keeps decoded the photos around the one on top of the stack.
// The album is split in pages of pageSize photos. Asking for a photo decodes
// its page and, in the background, the pages next to it. Pages further than
// keepPages from it are dropped. Distances count around the end of the
// album because flicking the last photo brings the first one on top.
type photoCache[P loadable] struct {
	photos   []P
	pageSize int
	log      logr.Logger
	reqC     chan<- pageRequest
	stopped  chan struct{}
}

// newPhotoCache starts the goroutine that decodes the pages of photos.
// Free must be called to stop it.
func newPhotoCache[P loadable](photos []P, pageSize int, log logr.Logger) *photoCache[P] {
	c := &photoCache[P]{photos: photos, pageSize: max(1, pageSize)}
	c.log = log.WithValues("photos", len(photos), "pageSize", c.pageSize)
	in := make(chan pageRequest)
	c.reqC = in
	c.stopped = make(chan struct{})
	go c.run(in)
	return c
}

// At returns the photo at i decoded. The bool is false past the ends of the album.
func (c *photoCache[P]) At(i int) (P, bool) {
	if i < 0 || i >= len(c.photos) {
		var z P
		return z, false
	}
	page := i / c.pageSize
	if n := c.numPages(); n > 1 {
		c.reqC <- pageRequest{page: (page + 1) % n}
		c.reqC <- pageRequest{page: (page + n - 1) % n}
	}
	r := pageRequest{page: page, done: make(chan struct{})}
	c.reqC <- r
	<-r.done
	return c.photos[i], true
}

func (c *photoCache[P]) Len() int {
	return len(c.photos)
}

// Free waits for the pages being decoded and drops all the photos.
// The photos may be handed to a new cache afterwards.
func (c *photoCache[P]) Free() {
	if c.reqC != nil {
		close(c.reqC)
		<-c.stopped
		c.reqC = nil
	}
	c.each(0, len(c.photos), func(p P) { p.Unload() })
}

func (c *photoCache[P]) numPages() int {
	return photostack.IntCeil(len(c.photos), c.pageSize)
}

// pageRequest asks for a page. A request with done moves the window of
// kept pages to page and is answered once the page is decoded.
type pageRequest struct {
	page int
	done chan struct{}
}

// run owns the state of the cache. It serves the requests of reqs until
// the channel is closed.
func (c *photoCache[P]) run(reqs <-chan pageRequest) {
	defer close(c.stopped)
	decoded := make(map[int]bool)
	waiting := make(map[int][]chan struct{}) // pages being decoded and who waits for them
	ready := make(chan int)

	for {
		select {
		case req, ok := <-reqs:
			if !ok {
				for len(waiting) > 0 {
					delete(waiting, <-ready)
				}
				return
			}
			if req.done != nil {
				c.trim(decoded, req.page)
			}
			switch w, busy := waiting[req.page]; {
			case decoded[req.page]:
				if req.done != nil {
					close(req.done)
				}
			case busy:
				if req.done != nil {
					waiting[req.page] = append(w, req.done)
				}
			default:
				waiting[req.page] = nil
				if req.done != nil {
					waiting[req.page] = []chan struct{}{req.done}
				}
				go func(p int) {
					start := time.Now()
					c.loadPage(p)
					c.log.V(2).Info("page decoded", "page", p, "time", time.Since(start))
					ready <- p
				}(req.page)
			}
		case p := <-ready:
			decoded[p] = true
			for _, done := range waiting[p] {
				close(done)
			}
			delete(waiting, p)
		}
	}
}

// trim drops the decoded pages too far from the page of the top photo.
func (c *photoCache[P]) trim(decoded map[int]bool, top int) {
	n := c.numPages()
	for _, p := range slices.Sorted(maps.Keys(decoded)) {
		if pageDistance(p, top, n) <= keepPages {
			continue
		}
		delete(decoded, p)
		c.unloadPage(p)
		c.log.V(2).Info("page dropped", "page", p, "top", top)
	}
}

// pageDistance is the number of pages between a and b among n pages in a circle.
func pageDistance(a, b, n int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	return min(d, n-d)
}

func (c *photoCache[P]) loadPage(page int) {
	begin := page * c.pageSize
	c.each(begin, min(len(c.photos), begin+c.pageSize), func(p P) {
		if err := p.Load(); err != nil {
			c.log.Error(err, "decode photo", "page", page)
		}
	})
}

func (c *photoCache[P]) unloadPage(page int) {
	begin := page * c.pageSize
	c.each(begin, min(len(c.photos), begin+c.pageSize), func(p P) { p.Unload() })
}

// each calls fn concurrently for the photos in [begin, end) and waits.
func (c *photoCache[P]) each(begin, end int, fn func(P)) {
	var wg sync.WaitGroup
	for _, p := range c.photos[begin:end] {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(p)
		}()
	}
	wg.Wait()
}
