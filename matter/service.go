package matter

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/errgroup"

	"matterflow/sla"
	"matterflow/workflow"
)

// ErrNotFound signals the requested matter does not exist.
var ErrNotFound = errors.New("matter: not found")

// Repository defines the data access the service needs. Implementations
// must return transition histories sorted ascending by changed_at and must
// resolve reference labels (users, options, statuses) into DisplayValue
// before handing values over.
type Repository interface {
	ListByBoard(ctx context.Context, filters ListFilters) ([]Matter, error)
	GetByID(ctx context.Context, id string) (Matter, error)
	History(ctx context.Context, matterID string) ([]workflow.Transition, error)
	HistoryForMatters(ctx context.Context, matterIDs []string) (map[string][]workflow.Transition, error)
}

// Service enriches matters with cycle time and SLA classification and
// serves sorted, paginated listings.
type Service struct {
	repo      Repository
	evaluator *sla.Evaluator
	logger    *log.Logger

	// enrichWorkers caps the listing fan-out.
	enrichWorkers int
}

func NewService(repo Repository, evaluator *sla.Evaluator) *Service {
	return &Service{
		repo:          repo,
		evaluator:     evaluator,
		logger:        log.Default(),
		enrichWorkers: 8,
	}
}

// WithLogger overrides the warning logger, mainly for tests.
func (s *Service) WithLogger(logger *log.Logger) *Service {
	s.logger = logger
	return s
}

// List loads a board's matters, enriches each with cycle time and SLA,
// sorts the full result, then slices out the requested page.
func (s *Service) List(ctx context.Context, params ListParams) (ListResult, error) {
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.PageSize <= 0 || params.PageSize > 100 {
		params.PageSize = 20
	}

	matters, err := s.repo.ListByBoard(ctx, ListFilters{
		BoardID: params.BoardID,
		Search:  params.Search,
	})
	if err != nil {
		return ListResult{}, err
	}

	if err := s.enrich(ctx, matters); err != nil {
		return ListResult{}, err
	}

	Sort(matters, params.SortKey, params.Direction)

	total := len(matters)
	start := (params.Page - 1) * params.PageSize
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}

	return ListResult{
		Items:    matters[start:end],
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

// Get returns a single enriched matter.
func (s *Service) Get(ctx context.Context, id string) (Matter, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Matter{}, err
	}

	transitions, err := s.repo.History(ctx, id)
	if err != nil {
		return Matter{}, err
	}

	s.stamp(&m, transitions)
	return m, nil
}

// enrich attaches cycle time and SLA to every matter. The per-matter work
// is independent, so it fans out across a bounded errgroup; ordering does
// not matter because the caller sorts afterward.
func (s *Service) enrich(ctx context.Context, matters []Matter) error {
	if len(matters) == 0 {
		return nil
	}

	ids := make([]string, len(matters))
	for i, m := range matters {
		ids[i] = m.ID
	}

	histories, err := s.repo.HistoryForMatters(ctx, ids)
	if err != nil {
		return err
	}

	var g errgroup.Group
	g.SetLimit(s.enrichWorkers)
	for i := range matters {
		g.Go(func() error {
			s.stamp(&matters[i], histories[matters[i].ID])
			return nil
		})
	}
	return g.Wait()
}

// stamp computes the derived attributes for one matter. A matter with no
// transition history stays listed with a nil cycle time and an in-progress
// SLA; the condition is logged so it is never silently absorbed.
func (s *Service) stamp(m *Matter, transitions []workflow.Transition) {
	ct, err := workflow.CalculateFor(m.ID, transitions)
	if err != nil {
		if errors.Is(err, workflow.ErrNoHistory) {
			s.logger.Printf("matter: %v", err)
		}
		m.CycleTime = nil
		m.SLA = s.evaluator.Evaluate(nil)
		return
	}
	m.CycleTime = &ct
	m.SLA = s.evaluator.Evaluate(&ct)
}
