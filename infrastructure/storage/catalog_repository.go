package storage

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strconv"
	"vaultcast/domain"
	"vaultcast/errors"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
)

const (
	assetPrefix     = "asset:"
	assetNamePrefix = "asset_name:"
	assetSequence   = "seq:asset"

	fieldTitle       = "title"
	fieldDescription = "description"
	fieldFileName    = "file_name"
)

// CatalogRepository stores merged assets in Badger and indexes their text in Bluge.
// Badger is the source of truth, the index only resolves search hits to ids.
type CatalogRepository struct {
	db    *badger.DB
	index *bluge.Writer
	seq   *badger.Sequence
	log   *slog.Logger
}

func NewCatalogRepository(db *badger.DB, index *bluge.Writer, log *slog.Logger) (*CatalogRepository, error) {
	seq, err := db.GetSequence([]byte(assetSequence), 100)
	if err != nil {
		return nil, errors.NewStorageError("open asset sequence", err)
	}
	return &CatalogRepository{db: db, index: index, seq: seq, log: log}, nil
}

// Close releases the leased sequence range.
func (r *CatalogRepository) Close() error {
	return r.seq.Release()
}

func (r *CatalogRepository) IsReady(_ context.Context) error {
	if r.db.IsClosed() {
		return errors.NewStorageError("catalog readiness", badger.ErrDBClosed)
	}
	return nil
}

// Create assigns the next id, persists the asset and indexes it.
func (r *CatalogRepository) Create(ctx context.Context, asset domain.MergedAsset) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	next, err := r.seq.Next()
	if err != nil {
		return 0, errors.NewStorageError("next asset id", err)
	}
	// badger sequences start at zero
	asset.ID = next + 1

	data, err := json.Marshal(asset)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal asset: %w", err)
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(assetKey(asset.ID), data); err != nil {
			return err
		}
		return txn.Set(assetNameKey(asset.FileName), []byte(strconv.FormatUint(asset.ID, 10)))
	})
	if err != nil {
		return 0, errors.NewStorageError("store asset", err)
	}

	if err := r.indexAsset(asset); err != nil {
		r.log.Warn("Asset stored but not indexed", "asset_id", asset.ID, "error", err)
	}
	return asset.ID, nil
}

func (r *CatalogRepository) indexAsset(asset domain.MergedAsset) error {
	doc := bluge.NewDocument(strconv.FormatUint(asset.ID, 10)).
		AddField(bluge.NewTextField(fieldTitle, asset.Title)).
		AddField(bluge.NewTextField(fieldDescription, asset.Description)).
		AddField(bluge.NewKeywordField(fieldFileName, asset.FileName))
	return r.index.Update(doc.ID(), doc)
}

func (r *CatalogRepository) Get(ctx context.Context, id uint64) (domain.MergedAsset, error) {
	if err := ctx.Err(); err != nil {
		return domain.MergedAsset{}, err
	}
	var asset domain.MergedAsset
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(assetKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			return json.Unmarshal(v, &asset)
		})
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.MergedAsset{}, errors.ErrAssetNotFound
	}
	if err != nil {
		return domain.MergedAsset{}, errors.NewStorageError("read asset", err)
	}
	return asset, nil
}

// GetByFileName returns the latest asset published under fileName.
func (r *CatalogRepository) GetByFileName(ctx context.Context, fileName string) (domain.MergedAsset, error) {
	var id uint64
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(assetNameKey(fileName))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			parsed, err := strconv.ParseUint(string(v), 10, 64)
			id = parsed
			return err
		})
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.MergedAsset{}, errors.ErrAssetNotFound
	}
	if err != nil {
		return domain.MergedAsset{}, errors.NewStorageError("read asset name", err)
	}
	return r.Get(ctx, id)
}

// List returns up to limit assets, newest first.
func (r *CatalogRepository) List(ctx context.Context, limit int) ([]domain.MergedAsset, error) {
	assets := make([]domain.MergedAsset, 0)
	prefix := []byte(assetPrefix)
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.PrefetchSize = limit
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(append(prefix, 0xFF)); it.ValidForPrefix(prefix) && len(assets) < limit; it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := it.Item().Value(func(v []byte) error {
				var asset domain.MergedAsset
				if err := json.Unmarshal(v, &asset); err != nil {
					return fmt.Errorf("failed to unmarshal asset: %w", err)
				}
				assets = append(assets, asset)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.NewStorageError("list assets", err)
	}
	return assets, nil
}

// Search runs a full-text query over title and description, exact match on file name.
func (r *CatalogRepository) Search(ctx context.Context, query string, limit int) ([]domain.MergedAsset, error) {
	reader, err := r.index.Reader()
	if err != nil {
		return nil, errors.NewStorageError("open index reader", err)
	}
	defer reader.Close()

	q := bluge.NewBooleanQuery().
		AddShould(bluge.NewMatchQuery(query).SetField(fieldTitle)).
		AddShould(bluge.NewMatchQuery(query).SetField(fieldDescription)).
		AddShould(bluge.NewTermQuery(query).SetField(fieldFileName)).
		SetMinShould(1)

	dmi, err := reader.Search(ctx, bluge.NewTopNSearch(limit, q))
	if err != nil {
		return nil, errors.NewStorageError("search assets", err)
	}

	var ids []uint64
	match, err := dmi.Next()
	for err == nil && match != nil {
		visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				if id, parseErr := strconv.ParseUint(string(value), 10, 64); parseErr == nil {
					ids = append(ids, id)
				}
				return false
			}
			return true
		})
		if visitErr != nil {
			return nil, errors.NewStorageError("read search hit", visitErr)
		}
		match, err = dmi.Next()
	}
	if err != nil {
		return nil, errors.NewStorageError("iterate search hits", err)
	}

	assets := make([]domain.MergedAsset, 0, len(ids))
	for _, id := range ids {
		asset, err := r.Get(ctx, id)
		if stderrors.Is(err, errors.ErrAssetNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

func assetKey(id uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", assetPrefix, id))
}

func assetNameKey(fileName string) []byte {
	return []byte(assetNamePrefix + fileName)
}
