package editor

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// fakeGateway is an in-memory Gateway keyed by credential.
type fakeGateway struct {
	mu      sync.Mutex
	records map[string]map[string]Record // cred -> id -> record
	nextID  int
	now     time.Time
	creates int
	updates int
	err     error
	// hook runs before every call returns; tests use it to interleave calls.
	hook func(op string)
	// listed runs after List has read the records but before it returns.
	listed func()
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		records: make(map[string]map[string]Record),
		now:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (g *fakeGateway) tick() time.Time {
	ts := g.now
	g.now = g.now.Add(time.Minute)
	return ts
}

func (g *fakeGateway) before(op string) error {
	if g.hook != nil {
		g.hook(op)
	}
	return g.err
}

func (g *fakeGateway) Create(ctx context.Context, cred string, p Payload) (Record, error) {
	if err := g.before("create"); err != nil {
		return Record{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if cred == "" {
		return Record{}, ErrUnauthorized
	}
	g.nextID++
	g.creates++
	ts := g.tick()
	rec := Record{
		ID:        fmt.Sprintf("srv%d", g.nextID),
		Name:      p.Name,
		Content:   append([]byte(nil), p.Content...),
		ATSScore:  p.ATSScore,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if g.records[cred] == nil {
		g.records[cred] = make(map[string]Record)
	}
	g.records[cred][rec.ID] = rec
	return rec, nil
}

func (g *fakeGateway) Update(ctx context.Context, cred, id string, p Payload) (Record, error) {
	if err := g.before("update"); err != nil {
		return Record{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	rec, ok := g.records[cred][id]
	if !ok {
		return Record{}, ErrNotFound
	}
	g.updates++
	rec.Name = p.Name
	rec.Content = append([]byte(nil), p.Content...)
	rec.ATSScore = p.ATSScore
	rec.UpdatedAt = g.tick()
	g.records[cred][id] = rec
	return rec, nil
}

func (g *fakeGateway) Get(ctx context.Context, cred, id string) (Record, error) {
	if err := g.before("get"); err != nil {
		return Record{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	rec, ok := g.records[cred][id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (g *fakeGateway) List(ctx context.Context, cred string) ([]Summary, error) {
	if err := g.before("list"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Summary, 0, len(g.records[cred]))
	for _, rec := range g.records[cred] {
		out = append(out, Summary{ID: rec.ID, Name: rec.Name, ATSScore: rec.ATSScore, CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if g.listed != nil {
		listed := g.listed
		g.listed = nil
		g.mu.Unlock()
		listed()
		g.mu.Lock()
	}
	return out, nil
}

func (g *fakeGateway) Delete(ctx context.Context, cred, id string) error {
	if err := g.before("delete"); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.records[cred][id]; !ok {
		return ErrNotFound
	}
	delete(g.records[cred], id)
	return nil
}
