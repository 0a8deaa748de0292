package catalog

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"supermarket-prices/internal/model"
	"supermarket-prices/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Updater applies observations against the store gateway: validate, look up
// the stored record, reconcile, and write the merged record back. Store
// failures are converted to the Failed classification so that one product
// never aborts its siblings.
type Updater struct {
	gateway    store.Gateway
	reconciler *Reconciler
	logger     zerolog.Logger
	locks      identityLocks
	now        func() time.Time
}

// NewUpdater creates an updater over the given gateway and reconciler.
func NewUpdater(gateway store.Gateway, reconciler *Reconciler, logger zerolog.Logger) *Updater {
	return &Updater{
		gateway:    gateway,
		reconciler: reconciler,
		logger:     logger.With().Str("component", "updater").Logger(),
		now:        time.Now,
	}
}

// Apply reconciles a single observation and persists the outcome, returning
// the classification for aggregate reporting.
func (u *Updater) Apply(ctx context.Context, observed model.Product) model.Result {
	if !Validate(observed) {
		u.logger.Warn().
			Str("product_id", observed.ID).
			Str("name", observed.Name).
			Float64("price", observed.CurrentPrice).
			Msg("observation failed validation, discarding")
		return model.ResultFailed
	}

	// Reconciliation is read-modify-write without a concurrency token, so
	// writes for one identity must not interleave.
	unlock := u.locks.lock(observed.ID + "\x00" + observed.Name)
	defer unlock()

	now := u.now()

	stored, oldName, err := u.lookupStored(ctx, observed)
	if err != nil {
		u.logger.Error().Err(err).
			Str("product_id", observed.ID).
			Str("name", observed.Name).
			Msg("store lookup failed")
		return model.ResultFailed
	}

	outcome := u.reconciler.Reconcile(observed, stored, now)

	if err := u.persist(ctx, outcome); err != nil {
		u.logger.Error().Err(err).
			Str("product_id", observed.ID).
			Str("name", observed.Name).
			Str("result", outcome.Result.String()).
			Msg("store write failed")
		return model.ResultFailed
	}

	// The superseded identity is removed only once the record exists under
	// its new name, so a failed write never loses the stored history.
	if oldName != "" {
		if err := u.gateway.Delete(ctx, observed.ID, oldName); err != nil {
			u.logger.Error().Err(err).
				Str("product_id", observed.ID).
				Str("old_name", oldName).
				Str("new_name", observed.Name).
				Msg("failed to remove superseded identity")
		} else {
			u.logger.Info().
				Str("product_id", observed.ID).
				Str("old_name", oldName).
				Str("new_name", observed.Name).
				Msg("product renamed at source, re-homed")
		}
	}

	return outcome.Result
}

// lookupStored fetches the stored record for the observation's identity.
// When the exact (id, name) pair is absent but the bare id exists under a
// different name, the stored record is re-homed to the new name so the
// product keeps its price history across renames at the source. A non-empty
// oldName reports the superseded identity; the caller deletes it after the
// re-homed record has been written.
func (u *Updater) lookupStored(ctx context.Context, observed model.Product) (stored *model.Product, oldName string, err error) {
	stored, err = u.gateway.Lookup(ctx, observed.ID, observed.Name)
	if err == nil {
		return stored, "", nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, "", err
	}

	prior, err := u.gateway.FindByID(ctx, observed.ID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}

	oldName = prior.Name
	prior.Name = observed.Name
	return prior, oldName, nil
}

// persist writes the outcome: a create for new products (surfacing identity
// conflicts), a replace for everything else.
func (u *Updater) persist(ctx context.Context, outcome Outcome) error {
	if outcome.Result == model.ResultNewProduct {
		if err := u.gateway.Insert(ctx, outcome.Product); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return fmt.Errorf("conflicting id for product %q: %w", outcome.Product.Name, err)
			}
			return err
		}
		u.logger.Info().
			Str("product_id", outcome.Product.ID).
			Str("name", outcome.Product.Name).
			Float64("price", outcome.Product.CurrentPrice).
			Msg("new product")
		return nil
	}
	return u.gateway.Upsert(ctx, outcome.Product)
}

// Summary aggregates classification counts for one batch run.
type Summary struct {
	RunID        uuid.UUID
	NewProducts  int
	PriceChanged int
	InfoChanged  int
	UpToDate     int
	Failed       int
}

// Total returns the number of observations processed.
func (s Summary) Total() int {
	return s.NewProducts + s.PriceChanged + s.InfoChanged + s.UpToDate + s.Failed
}

// String renders the run report line.
func (s Summary) String() string {
	return fmt.Sprintf("%d new products, %d updated prices, %d updated info, %d already up-to-date, %d failed",
		s.NewProducts, s.PriceChanged, s.InfoChanged, s.UpToDate, s.Failed)
}

func (s *Summary) count(result model.Result) {
	switch result {
	case model.ResultNewProduct:
		s.NewProducts++
	case model.ResultPriceChanged:
		s.PriceChanged++
	case model.ResultInfoChanged:
		s.InfoChanged++
	case model.ResultAlreadyUpToDate:
		s.UpToDate++
	case model.ResultFailed:
		s.Failed++
	}
}

// ApplyBatch reconciles a page of observations with bounded concurrency.
// Distinct identities are independent; same-identity observations are
// serialized by the per-identity locks. The batch always runs to completion
// regardless of individual failures.
func (u *Updater) ApplyBatch(ctx context.Context, observations []model.Product, concurrency int) Summary {
	if concurrency < 1 {
		concurrency = 1
	}

	summary := Summary{RunID: uuid.New()}
	logger := u.logger.With().Str("run_id", summary.RunID.String()).Logger()
	logger.Info().
		Int("observations", len(observations)).
		Int("concurrency", concurrency).
		Msg("starting batch")

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, obs := range observations {
		obs := obs
		g.Go(func() error {
			result := u.Apply(ctx, obs)
			mu.Lock()
			summary.count(result)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	logger.Info().
		Int("new_products", summary.NewProducts).
		Int("price_changed", summary.PriceChanged).
		Int("info_changed", summary.InfoChanged).
		Int("up_to_date", summary.UpToDate).
		Int("failed", summary.Failed).
		Msg("batch complete")

	return summary
}

// identityLocks serializes reconciliations per product identity using
// striped mutexes. Hash collisions only over-serialize, never under.
type identityLocks struct {
	stripes [64]sync.Mutex
}

func (l *identityLocks) lock(key string) func() {
	h := fnv.New32a()
	h.Write([]byte(key))
	m := &l.stripes[h.Sum32()%uint32(len(l.stripes))]
	m.Lock()
	return m.Unlock
}
