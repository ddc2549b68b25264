package upload

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/niceboard/internal/domain"
	"github.com/honeycarbs/niceboard/internal/normalize"
	"github.com/honeycarbs/niceboard/pkg/logging"
	"github.com/honeycarbs/niceboard/pkg/niceboard"
)

const defaultBatchSize = 10

// Option configures Service
type Option func(*config)

type config struct {
	remote    Remote
	cache     *Cache
	locations LocationStandardizer
	logos     LogoResolver
	logger    *logging.Logger
	clock     func() time.Time
	batchSize int
}

// WithRemote sets the remote board accessors
func WithRemote(remote Remote) Option {
	return func(c *config) {
		c.remote = remote
	}
}

// WithCache shares an existing cache instead of starting empty
func WithCache(cache *Cache) Option {
	return func(c *config) {
		c.cache = cache
	}
}

// WithLocationStandardizer sets the location normalizer
func WithLocationStandardizer(s LocationStandardizer) Option {
	return func(c *config) {
		c.locations = s
	}
}

// WithLogoResolver sets the logo resolver used for new companies
func WithLogoResolver(r LogoResolver) Option {
	return func(c *config) {
		c.logos = r
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithBatchSize sets the default chunk size for UploadJobs
func WithBatchSize(n int) Option {
	return func(c *config) {
		c.batchSize = n
	}
}

// Service uploads job records to the board with create-or-update semantics.
// It owns its cache and must not be used from several goroutines at once.
type Service struct {
	remote    Remote
	cache     *Cache
	resolver  *Resolver
	finder    *Finder
	logger    *logging.Logger
	clock     func() time.Time
	batchSize int
}

// NewService builds Service from options
func NewService(opts ...Option) (*Service, error) {
	cfg := &config{
		clock:     time.Now,
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.remote.validate(); err != nil {
		return nil, err
	}
	if cfg.locations == nil {
		return nil, fmt.Errorf("upload: location standardizer is required")
	}
	if cfg.cache == nil {
		cfg.cache = NewCache()
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}
	if cfg.batchSize <= 0 {
		cfg.batchSize = defaultBatchSize
	}

	resolver := NewResolver(cfg.remote, cfg.cache, cfg.locations, cfg.logos, cfg.logger)
	return &Service{
		remote:    cfg.remote,
		cache:     cfg.cache,
		resolver:  resolver,
		finder:    NewFinder(cfg.remote.Jobs, resolver, cfg.logger),
		logger:    cfg.logger,
		clock:     cfg.clock,
		batchSize: cfg.batchSize,
	}, nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(
	client *niceboard.Client,
	locations *normalize.LocationService,
	logos *normalize.LogoService,
	logger *logging.Logger,
	batchSize int,
) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("upload: niceboard client is required")
	}
	return NewService(
		WithRemote(RemoteFromClient(client)),
		WithLocationStandardizer(locations),
		WithLogoResolver(logos),
		WithLogger(logger.Named("upload")),
		WithBatchSize(batchSize),
	)
}

// Cache exposes the service's resolution cache
func (s *Service) Cache() *Cache {
	return s.cache
}

func (s *Service) now() string {
	return s.clock().Format(time.RFC3339Nano)
}

func (s *Service) failure(field, message string) domain.UploadResult {
	return domain.UploadResult{
		Success:    false,
		Message:    message,
		FieldError: field,
		Timestamp:  s.now(),
	}
}

// UploadJob uploads one record, updating the posting when a job with the
// same company, location and title already exists. rec is updated in place
// with the resolved ids. Expected failures come back as results, never errors.
func (s *Service) UploadJob(ctx context.Context, rec *domain.JobRecord) domain.UploadResult {
	return s.safeUpload(ctx, rec, nil)
}

func (s *Service) safeUpload(ctx context.Context, rec *domain.JobRecord, index *existingIndex) (result domain.UploadResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("upload panicked", "panic", r)
			result = s.failure("", fmt.Sprintf("Unexpected error: %v", r))
		}
	}()
	if rec == nil {
		return s.failure("", "Unexpected error: nil job record")
	}
	return s.upload(ctx, rec, index)
}

// resolveRefs fills in company and location ids. A non-nil result is the
// failure to report for rec.
func (s *Service) resolveRefs(ctx context.Context, rec *domain.JobRecord) *domain.UploadResult {
	if rec.CompanyID == nil {
		id, err := s.resolver.ResolveCompany(ctx, rec)
		if err != nil {
			res := s.failure(domain.FieldCompany, "Company processing failed: "+err.Error())
			return &res
		}
		rec.CompanyID = &id
	}

	if rec.LocationID == nil {
		id, err := s.resolver.ResolveLocation(ctx, rec.Location)
		if err != nil {
			res := s.failure(domain.FieldLocation, "Location processing failed: "+err.Error())
			return &res
		}
		rec.LocationID = &id
	}
	return nil
}

func (s *Service) upload(ctx context.Context, rec *domain.JobRecord, index *existingIndex) domain.UploadResult {
	if res := s.resolveRefs(ctx, rec); res != nil {
		return *res
	}

	salary := ParseSalary(rec.Salary, s.logger)

	if rec.JobTypeID == nil {
		id, err := s.resolver.ResolveJobType(ctx, rec.JobType)
		if err != nil {
			var correction *NeedsCorrectionError
			if errors.As(err, &correction) {
				res := s.failure(domain.FieldJobType, "Invalid job type")
				res.NeedsCorrection = true
				res.ErrorDetails = correction.Correction()
				return res
			}
			return s.failure(domain.FieldJobType, "Job type processing failed: "+err.Error())
		}
		rec.JobTypeID = &id
	}

	in := niceboard.JobInput{
		CompanyID:       *rec.CompanyID,
		JobTypeID:       *rec.JobTypeID,
		LocationID:      *rec.LocationID,
		Title:           rec.Title,
		DescriptionHTML: rec.DescriptionHTML,
		ApplyByForm:     rec.ApplyByForm,
		ApplyURL:        rec.ApplyURL,
		ApplyEmail:      rec.ApplyEmail,
		IsRemote:        rec.Remote,
		RemoteOnly:      rec.Remote,
		SalaryMin:       salary.SalaryMin,
		SalaryMax:       salary.SalaryMax,
	}

	existingID, found, covered := index.lookup(*rec.CompanyID, *rec.LocationID, rec.Title)
	if !covered {
		var err error
		existingID, found, err = s.finder.Find(ctx, *rec.CompanyID, *rec.LocationID, rec.Title)
		if err != nil {
			return s.failure("", "API call failed: "+err.Error())
		}
	}

	var (
		job *niceboard.Job
		op  domain.Operation
		err error
	)
	if found {
		op = domain.OperationUpdated
		job, err = s.remote.Jobs.Update(ctx, existingID, in)
	} else {
		op = domain.OperationCreated
		job, err = s.remote.Jobs.Create(ctx, in)
	}
	if err != nil {
		return s.failure("", "API call failed: "+err.Error())
	}
	if job == nil {
		job = &niceboard.Job{}
	}
	if found && job.ID == 0 {
		job.ID = existingID
	}
	if !found && job.ID != 0 {
		index.remember(*rec.CompanyID, *rec.LocationID, rec.Title, job.ID)
	}

	s.logger.Info("job uploaded",
		"operation", op,
		"job_id", job.ID,
		"title", rec.Title,
		"company_id", *rec.CompanyID,
		"location_id", *rec.LocationID,
	)
	return domain.UploadResult{
		Success:   true,
		Operation: op,
		Job:       job,
		Timestamp: s.now(),
	}
}

// UploadJobs uploads records in chunks of batchSize (the service default
// when <= 0), sharing lookups across each chunk. Every record receives an
// outcome; job_index in errors is the record's position in records.
func (s *Service) UploadJobs(ctx context.Context, records []domain.JobRecord, batchSize int) domain.BatchResult {
	if batchSize <= 0 {
		batchSize = s.batchSize
	}

	result := domain.BatchResult{
		RunID:     uuid.NewString(),
		Total:     len(records),
		Errors:    []domain.BatchError{},
		JobIDs:    []int{},
		Timestamp: s.now(),
	}
	log := s.logger.With("run_id", result.RunID)
	log.Info("batch upload started", "total", len(records), "batch_size", batchSize)

	fail := func(i int, res domain.UploadResult) {
		result.Failed++
		result.Errors = append(result.Errors, domain.BatchError{
			UploadResult: res,
			JobIndex:     i,
			JobTitle:     titleOf(records[i]),
		})
	}

	for start := 0; start < len(records); start += batchSize {
		end := min(start+batchSize, len(records))

		var valid []int
		for i := start; i < end; i++ {
			if missing := missingFields(&records[i]); len(missing) > 0 {
				res := s.failure(missing[0], "Missing required fields: "+strings.Join(missing, ", "))
				fail(i, res)
				continue
			}
			valid = append(valid, i)
		}
		if len(valid) == 0 {
			continue
		}

		ready, index := s.prepareChunk(ctx, log, records, valid, fail)

		for _, i := range ready {
			res := s.safeUpload(ctx, &records[i], index)
			if !res.Success {
				fail(i, res)
				continue
			}
			result.Successful++
			if res.Job != nil && res.Job.ID != 0 {
				result.JobIDs = append(result.JobIDs, res.Job.ID)
			}
		}
	}

	switch {
	case result.Failed == 0:
		result.Success = domain.BatchSucceeded
	case result.Successful > 0:
		result.Success = domain.BatchPartial
	default:
		result.Success = domain.BatchFailed
	}

	log.Info("batch upload finished",
		"successful", result.Successful,
		"failed", result.Failed,
		"status", result.Success.String(),
	)
	return result
}

// prepareChunk warms the caches for a chunk and resolves company and
// location ids. Prefetch failures are logged and the affected records fall
// back to per-record resolution. Records whose references cannot be
// resolved are reported through fail and left out of ready.
func (s *Service) prepareChunk(
	ctx context.Context,
	log *logging.Logger,
	records []domain.JobRecord,
	valid []int,
	fail func(int, domain.UploadResult),
) (ready []int, index *existingIndex) {
	reported := make(map[int]bool)
	defer func() {
		if r := recover(); r != nil {
			log.Error("chunk preparation panicked, falling back to per-record upload", "panic", r)
			ready, index = ready[:0], nil
			for _, i := range valid {
				if !reported[i] {
					ready = append(ready, i)
				}
			}
		}
	}()

	if err := s.resolver.LoadJobTypes(ctx); err != nil {
		log.Warn("job type prefetch failed", "err", err)
	}
	if !s.cache.HasCompanies() {
		if err := s.resolver.LoadCompanies(ctx); err != nil {
			log.Warn("company prefetch failed", "err", err)
		}
	}

	var raws []string
	for _, i := range valid {
		if records[i].LocationID == nil {
			raws = append(raws, records[i].Location)
		}
	}
	s.resolver.ResolveLocations(ctx, raws)

	pending := make([]*domain.JobRecord, 0, len(valid))
	for _, i := range valid {
		if res := s.resolveRefs(ctx, &records[i]); res != nil {
			reported[i] = true
			fail(i, *res)
			continue
		}
		ready = append(ready, i)
		pending = append(pending, &records[i])
	}

	return ready, s.finder.FindBatch(ctx, pending)
}

func titleOf(rec domain.JobRecord) string {
	if rec.Title == "" {
		return "Unknown"
	}
	return rec.Title
}
