// Package store provides an in-memory ProfileStore on go-memdb.
package store

import (
	"context"
	"fmt"

	memdb "github.com/hashicorp/go-memdb"
	"github.com/on-the-ground/effect_ive_profile/profile"
	"github.com/on-the-ground/effect_ive_profile/services"
)

const (
	profileTable = "profile"
	idIndex      = "id"
)

var _ services.ProfileStore = (*MemDB)(nil)

// ErrNotFound is the message of the DbError returned for unknown users.
const ErrNotFound = "not found"

type record struct {
	UserID       string
	Name         string
	EmailAddress string
}

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			profileTable: {
				Name: profileTable,
				Indexes: map[string]*memdb.IndexSchema{
					idIndex: {
						Name:    idIndex,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "UserID"},
					},
				},
			},
		},
	}
}

// MemDB keeps profiles in a go-memdb table indexed by user id.
type MemDB struct {
	db *memdb.MemDB
}

// NewMemDB creates a store holding the seed profiles.
func NewMemDB(seed ...profile.Profile) (*MemDB, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("create memdb: %w", err)
	}
	s := &MemDB{db: db}
	for _, p := range seed {
		if err := s.Persist(context.Background(), p); err != nil {
			return nil, fmt.Errorf("seed profile %s: %w", p.UserID, err)
		}
	}
	return s, nil
}

func (s *MemDB) Lookup(ctx context.Context, userID profile.UserID) (profile.Profile, error) {
	if err := ctx.Err(); err != nil {
		return profile.Profile{}, err
	}
	txn := s.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(profileTable, idIndex, userID)
	if err != nil {
		return profile.Profile{}, profile.NewDbError(err.Error())
	}
	if raw == nil {
		return profile.Profile{}, profile.NewDbError(ErrNotFound)
	}
	r := raw.(*record)
	return profile.Profile{
		UserID:       r.UserID,
		Name:         r.Name,
		EmailAddress: r.EmailAddress,
	}, nil
}

// Persist inserts the profile or replaces the stored one with the same id.
func (s *MemDB) Persist(ctx context.Context, p profile.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	txn := s.db.Txn(true)
	defer txn.Abort()

	if err := txn.Insert(profileTable, &record{
		UserID:       p.UserID,
		Name:         p.Name,
		EmailAddress: p.EmailAddress,
	}); err != nil {
		return profile.NewDbError(err.Error())
	}
	txn.Commit()
	return nil
}
