package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depedit/internal/core/ports"
)

const (
	// HasherNodeID is the unique identifier for the digest Hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
	// StoreNodeID is the unique identifier for the manifest store Graft node.
	StoreNodeID graft.ID = "adapter.fs.store"
)

func init() {
	// Hasher Node (concrete implementation needed by Store)
	graft.Register(graft.Node[*Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Hasher, error) {
			return NewHasher(), nil
		},
	})

	// Store Node
	graft.Register(graft.Node[ports.ManifestStore]{
		ID:        StoreNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{HasherNodeID},
		Run: func(ctx context.Context) (ports.ManifestStore, error) {
			hasher, err := graft.Dep[*Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(hasher), nil
		},
	})
}
