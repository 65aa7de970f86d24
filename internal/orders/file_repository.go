package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

const defaultPaymentMethod = "Credit Card"

// FileRepository stores every order in one JSON array on disk. All writes are
// read-modify-write of the whole document, serialized by a single mutex and
// made durable with a temp-file-and-rename replacement, so concurrent
// creates cannot lose each other and a crashed write cannot truncate the
// store. A missing file is the empty store, not an error.
type FileRepository struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: path,
		now:  time.Now,
	}
}

func (r *FileRepository) WithNowFunc(f func() time.Time) *FileRepository {
	if f != nil {
		r.now = f
	}
	return r
}

func (r *FileRepository) Create(ctx context.Context, params CreateOrderParams) (Order, error) {
	if err := ctx.Err(); err != nil {
		return Order{}, err
	}
	if len(params.Items) == 0 || !params.Shipping.complete() {
		return Order{}, ErrMissingFields
	}

	paymentMethod := params.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}

	var total float64
	for _, it := range params.Items {
		total += it.Price * float64(it.Quantity)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return Order{}, err
	}

	now := r.now()
	order := Order{
		ID:            fmt.Sprintf("ord_%d", now.UnixNano()),
		Items:         params.Items,
		Total:         total,
		Shipping:      params.Shipping,
		PaymentMethod: paymentMethod,
		Status:        StatusPending,
		CreatedAt:     now,
	}

	all = append(all, order)
	if err := r.save(all); err != nil {
		return Order{}, err
	}

	return order, nil
}

// List returns every order, newest first.
func (r *FileRepository) List(ctx context.Context) ([]Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return nil, err
	}

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	return all, nil
}

func (r *FileRepository) GetByID(ctx context.Context, id string) (Order, error) {
	if err := ctx.Err(); err != nil {
		return Order{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return Order{}, err
	}

	for _, o := range all {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrOrderNotFound
}

func (r *FileRepository) UpdateStatus(ctx context.Context, id string, status Status) (Order, error) {
	if err := ctx.Err(); err != nil {
		return Order{}, err
	}
	if !ValidStatus(status) {
		return Order{}, ErrInvalidStatus
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return Order{}, err
	}

	for i := range all {
		if all[i].ID == id {
			updatedAt := r.now()
			all[i].Status = status
			all[i].UpdatedAt = &updatedAt
			if err := r.save(all); err != nil {
				return Order{}, err
			}
			return all[i], nil
		}
	}
	return Order{}, ErrOrderNotFound
}

func (r *FileRepository) load() ([]Order, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Order{}, nil
		}
		return nil, fmt.Errorf("failed to read orders file: %w", err)
	}

	var all []Order
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("failed to parse orders file: %w", err)
	}
	return all, nil
}

func (r *FileRepository) save(all []Order) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal orders: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create orders directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "orders-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp orders file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write orders: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp orders file: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace orders file: %w", err)
	}
	return nil
}
