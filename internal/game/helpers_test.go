package game

import (
	"context"
	"testing"
)

// recordScene keeps the live instance set so tests can check what the core
// placed and removed.
type recordScene struct {
	live    map[InstanceID]Transform
	models  map[InstanceID]*Model
	removed int
	camera  InstanceID
	atmos   []Atmosphere
}

func newRecordScene() *recordScene {
	return &recordScene{
		live:   make(map[InstanceID]Transform),
		models: make(map[InstanceID]*Model),
	}
}

func (r *recordScene) Place(id InstanceID, m *Model, xf Transform) {
	r.live[id] = xf
	r.models[id] = m
}

func (r *recordScene) Remove(id InstanceID) {
	delete(r.live, id)
	delete(r.models, id)
	r.removed++
}

func (r *recordScene) AttachCamera(id InstanceID) { r.camera = id }

func (r *recordScene) SetAtmosphere(a Atmosphere) { r.atmos = append(r.atmos, a) }

func (r *recordScene) countKind(k EntityKind) int {
	n := 0
	for id := range r.live {
		if id.Kind() == k {
			n++
		}
	}
	return n
}

// fillPools resolves the default manifest entries for kinds synchronously.
func fillPools(t *testing.T, ps *Pools, kinds ...PoolKind) {
	t.Helper()
	cat := NewBuiltinCatalog()
	m := DefaultManifest()
	for _, k := range kinds {
		var models []*Model
		for _, name := range m[k] {
			model, err := cat.Resolve(context.Background(), name)
			if err != nil {
				t.Fatalf("resolve %s: %v", name, err)
			}
			models = append(models, model)
		}
		ps.Get(k).Set(models)
	}
}

func mustModel(t *testing.T, name string) *Model {
	t.Helper()
	m, err := NewBuiltinCatalog().Resolve(context.Background(), name)
	if err != nil {
		t.Fatalf("resolve %s: %v", name, err)
	}
	return m
}
