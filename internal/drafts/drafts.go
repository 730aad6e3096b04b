// Package drafts persists saved draft configurations: the marksman a player
// picked and the lane state it was picked into.
package drafts

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/botlane/botlane/pkg/champion"
)

// Draft is one saved configuration. Optional fields are nil when unset.
type Draft struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ADCChampion  string    `json:"adcChampion"`
	AllySupport  *string   `json:"allySupport"`
	EnemyADC     *string   `json:"enemyAdc"`
	EnemySupport *string   `json:"enemySupport"`
	EnemyThreat  *string   `json:"enemyThreat"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (d Draft) clone() Draft {
	c := d
	c.AllySupport = copyString(d.AllySupport)
	c.EnemyADC = copyString(d.EnemyADC)
	c.EnemySupport = copyString(d.EnemySupport)
	c.EnemyThreat = copyString(d.EnemyThreat)
	c.Notes = copyString(d.Notes)
	return c
}

func copyString(p *string) *string {
	if p == nil {
		return nil
	}
	s := *p
	return &s
}

// optional maps "" to nil.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Input holds the fields of a new draft.
type Input struct {
	Name         string `json:"name"`
	ADCChampion  string `json:"adcChampion"`
	AllySupport  string `json:"allySupport,omitempty"`
	EnemyADC     string `json:"enemyAdc,omitempty"`
	EnemySupport string `json:"enemySupport,omitempty"`
	EnemyThreat  string `json:"enemyThreat,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// Optional is a patch field. It tells an absent key apart from an explicit
// null, which clears the field.
type Optional struct {
	Set   bool
	Value string
}

// Some returns a set Optional.
func Some(v string) Optional { return Optional{Set: true, Value: v} }

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = ""
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// Patch is a partial update. Unset fields are left untouched.
type Patch struct {
	Name         Optional `json:"name"`
	ADCChampion  Optional `json:"adcChampion"`
	AllySupport  Optional `json:"allySupport"`
	EnemyADC     Optional `json:"enemyAdc"`
	EnemySupport Optional `json:"enemySupport"`
	EnemyThreat  Optional `json:"enemyThreat"`
	Notes        Optional `json:"notes"`
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return !p.Name.Set && !p.ADCChampion.Set && !p.AllySupport.Set && !p.EnemyADC.Set &&
		!p.EnemySupport.Set && !p.EnemyThreat.Set && !p.Notes.Set
}

func (p Patch) apply(d *Draft) {
	if p.Name.Set {
		d.Name = p.Name.Value
	}
	if p.ADCChampion.Set {
		d.ADCChampion = p.ADCChampion.Value
	}
	if p.AllySupport.Set {
		d.AllySupport = optional(p.AllySupport.Value)
	}
	if p.EnemyADC.Set {
		d.EnemyADC = optional(p.EnemyADC.Value)
	}
	if p.EnemySupport.Set {
		d.EnemySupport = optional(p.EnemySupport.Value)
	}
	if p.EnemyThreat.Set {
		d.EnemyThreat = optional(p.EnemyThreat.Value)
	}
	if p.Notes.Set {
		d.Notes = optional(p.Notes.Value)
	}
}

// ValidationError reports an invalid draft field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid draft: %s %s", e.Field, e.Reason)
}

// Store is the persistence backend of the Service. Implementations must be
// safe for concurrent use and make Update atomic for a single record.
type Store interface {
	// List returns all drafts, newest first.
	List(ctx context.Context) ([]Draft, error)
	Get(ctx context.Context, id string) (Draft, bool, error)
	Insert(ctx context.Context, d Draft) error
	// Update loads the draft, passes it to apply and writes it back. It
	// reports false when no draft has the id.
	Update(ctx context.Context, id string, apply func(*Draft) error) (Draft, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}

// Service validates drafts and stamps ids and timestamps.
type Service struct {
	store  Store
	roster *champion.Roster
	now    func() time.Time
	newID  func() string
}

// Option configures a Service.
type Option func(*Service)

// WithRoster makes the service reject champion fields that name no champion
// of r.
func WithRoster(r *champion.Roster) Option {
	return func(s *Service) { s.roster = r }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService creates a Service over store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
		newID: newUUID,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// List returns all drafts, newest first.
func (s *Service) List(ctx context.Context) ([]Draft, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// Get returns the draft with the given id.
func (s *Service) Get(ctx context.Context, id string) (Draft, bool, error) {
	return s.store.Get(ctx, id)
}

// Create validates in and stores it as a new draft.
func (s *Service) Create(ctx context.Context, in Input) (Draft, error) {
	if err := s.validateInput(in); err != nil {
		return Draft{}, err
	}
	now := s.timestamp()
	d := Draft{
		ID:           s.newID(),
		Name:         in.Name,
		ADCChampion:  in.ADCChampion,
		AllySupport:  optional(in.AllySupport),
		EnemyADC:     optional(in.EnemyADC),
		EnemySupport: optional(in.EnemySupport),
		EnemyThreat:  optional(in.EnemyThreat),
		Notes:        optional(in.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Insert(ctx, d); err != nil {
		return Draft{}, err
	}
	return d, nil
}

// Update applies p to the draft with the given id and bumps its update time.
func (s *Service) Update(ctx context.Context, id string, p Patch) (Draft, bool, error) {
	if err := s.validatePatch(p); err != nil {
		return Draft{}, false, err
	}
	return s.store.Update(ctx, id, func(d *Draft) error {
		p.apply(d)
		d.UpdatedAt = s.timestamp()
		return nil
	})
}

// Delete removes the draft with the given id. It reports false when there
// was none.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.store.Delete(ctx, id)
}

// Ping checks that the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Close releases the store.
func (s *Service) Close() error {
	return s.store.Close()
}

func newUUID() string { return uuid.NewString() }

// timestamp is truncated to the precision every store keeps.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *Service) validateInput(in Input) error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if strings.TrimSpace(in.ADCChampion) == "" {
		return &ValidationError{Field: "adcChampion", Reason: "is required"}
	}
	fields := []struct{ name, value string }{
		{"adcChampion", in.ADCChampion},
		{"allySupport", in.AllySupport},
		{"enemyAdc", in.EnemyADC},
		{"enemySupport", in.EnemySupport},
	}
	for _, f := range fields {
		if err := s.checkChampion(f.name, f.value); err != nil {
			return err
		}
	}
	return checkThreat(in.EnemyThreat)
}

func (s *Service) validatePatch(p Patch) error {
	if p.Name.Set && strings.TrimSpace(p.Name.Value) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if p.ADCChampion.Set && strings.TrimSpace(p.ADCChampion.Value) == "" {
		return &ValidationError{Field: "adcChampion", Reason: "must not be empty"}
	}
	fields := []struct {
		name string
		opt  Optional
	}{
		{"adcChampion", p.ADCChampion},
		{"allySupport", p.AllySupport},
		{"enemyAdc", p.EnemyADC},
		{"enemySupport", p.EnemySupport},
	}
	for _, f := range fields {
		if !f.opt.Set {
			continue
		}
		if err := s.checkChampion(f.name, f.opt.Value); err != nil {
			return err
		}
	}
	if p.EnemyThreat.Set {
		return checkThreat(p.EnemyThreat.Value)
	}
	return nil
}

func (s *Service) checkChampion(field, value string) error {
	if s.roster == nil || value == "" {
		return nil
	}
	if _, ok := s.roster.Find(value); !ok {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("names unknown champion %q", value)}
	}
	return nil
}

func checkThreat(value string) error {
	if value == "" {
		return nil
	}
	if _, err := champion.ParseThreat(value); err != nil {
		return &ValidationError{Field: "enemyThreat", Reason: fmt.Sprintf("must be one of assassin, tank, poke (got %q)", value)}
	}
	return nil
}
