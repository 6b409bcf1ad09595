package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/domain"
	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/ports"
)

// PatchService runs the filter, symbol check and weaver for one assembly at a time
// and restores the backup pair when weaving fails.
type PatchService struct {
	filter   *EligibilityFilter
	symbols  *SymbolCheck
	recovery *RecoveryService
	weaver   ports.Weaver
	history  ports.HistoryRepository
	logger   *slog.Logger

	now   func() time.Time
	newID func() string
}

// NewPatchService creates a new patch service. history may be nil.
func NewPatchService(filter *EligibilityFilter, weaver ports.Weaver, history ports.HistoryRepository, logger *slog.Logger) *PatchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PatchService{
		filter:   filter,
		symbols:  NewSymbolCheck(logger),
		recovery: NewRecoveryService(logger),
		weaver:   weaver,
		history:  history,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Recovery exposes the recovery service used after failed patches
func (s *PatchService) Recovery() *RecoveryService {
	return s.recovery
}

// Patch builds a request from raw paths and executes it.
// It never returns an error: every outcome is logged and carried by the report.
func (s *PatchService) Patch(ctx context.Context, assemblyPath, outputPath string, references []string) *domain.PatchReport {
	req, err := domain.NewPatchRequest(assemblyPath, outputPath, references)
	if err != nil {
		return s.reject(ctx, assemblyPath, outputPath, err)
	}
	return s.Execute(ctx, req)
}

// reject reports a request that was refused before any file was touched
func (s *PatchService) reject(ctx context.Context, assemblyPath, outputPath string, err error) *domain.PatchReport {
	report := &domain.PatchReport{
		Source:    assemblyPath,
		Outcome:   domain.OutcomeRejected,
		Reason:    err.Error(),
		Err:       err,
		StartedAt: s.now(),
	}
	report.Request.OutputPath = outputPath
	s.logger.Error(fmt.Sprintf("Cannot patch (%s): %v", assemblyPath, err))
	s.record(ctx, report)
	return report
}

// Execute patches a single validated request
func (s *PatchService) Execute(ctx context.Context, req domain.PatchRequest) *domain.PatchReport {
	report := &domain.PatchReport{
		Source:    req.Assembly.Path(),
		Request:   req,
		StartedAt: s.now(),
	}
	defer func() {
		report.Duration = s.now().Sub(report.StartedAt)
		s.record(ctx, report)
	}()

	name := req.Assembly.FileName()

	// 1. Eligibility
	decision := s.filter.Evaluate(req.Assembly.Path())
	report.BlacklistMatches = decision.BlacklistMatches
	if decision.Skip {
		report.Outcome = decision.Outcome
		report.Reason = decision.Reason
		return report
	}

	// 2. Debug symbols
	if !s.symbols.Check(req.Assembly) {
		report.Outcome = domain.OutcomeSkippedNoSymbols
		report.Reason = "couldn't find debug information"
		return report
	}

	// 3. Weave
	// Resolved now: the weaver moves the source away before writing the output.
	inPlace := sameFile(req.Assembly.Path(), req.OutputPath)

	s.logger.Info(fmt.Sprintf("Patching : %s", name), "assembly", req.Assembly.Path())

	result := s.weave(ctx, req)
	for _, w := range result.Warnings {
		formatted := domain.FormatDiagnostic(w)
		report.Warnings = append(report.Warnings, formatted)
		s.logger.Warn(fmt.Sprintf("Warning when patching (%s): %s", name, formatted))
	}

	if !result.Failed() {
		report.Outcome = domain.OutcomePatched
		s.logger.Info(
			fmt.Sprintf("Patched successfully : %s -> %s", name, filepath.Base(req.OutputPath)),
			"output", req.OutputPath,
		)
		return report
	}

	// 4. Recover
	report.Err = result.Err
	s.logger.Error(fmt.Sprintf("Failed to patch (%s): %s", name, domain.FormatDiagnostic(result.Err.Error())))

	if err := s.rollback(req, inPlace); err != nil {
		report.Outcome = domain.OutcomeUnrecoverable
		report.Reason = "backup could not be restored"
		report.Err = errors.Join(result.Err, err)
		s.logger.Error(fmt.Sprintf("Could not recover (%s): %v", name, err), "assembly", req.Assembly.Path())
		return report
	}

	report.Outcome = domain.OutcomeRecovered
	report.Reason = "weave failed, original restored"
	return report
}

// weave invokes the weaver and turns a panic into a terminal result
func (s *PatchService) weave(ctx context.Context, req domain.PatchRequest) (result domain.WeaveResult) {
	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("%w: weaver panicked: %v", domain.ErrWeaveFailed, r)
		}
	}()

	return s.weaver.Weave(ctx, domain.WeaveRequest{
		AssemblyPath: req.Assembly.Path(),
		OutputPath:   req.OutputPath,
		References:   req.References,
	})
}

// rollback discards a separate output, then restores the backup pair.
// The output is never removed when it names the source or one of its backups.
func (s *PatchService) rollback(req domain.PatchRequest, inPlace bool) error {
	if !inPlace && !protectedPath(req.Assembly, req.OutputPath) {
		if err := s.recovery.DiscardOutput(req.OutputPath); err != nil {
			s.logger.Warn(err.Error(), "output", req.OutputPath)
		}
	}

	return s.recovery.Restore(req.Assembly)
}

func (s *PatchService) record(ctx context.Context, report *domain.PatchReport) {
	if s.history == nil {
		return
	}
	if err := s.history.Append(ctx, domain.NewHistoryEntry(s.newID(), report)); err != nil {
		s.logger.Warn("Failed to record patch history", "error", err)
	}
}

// PatchAllRequest represents a request to patch several assemblies
type PatchAllRequest struct {
	Assemblies []string
	OutputDir  string // empty patches in place
	References []string
}

// PatchAllResponse aggregates the outcome of a batch run
type PatchAllResponse struct {
	Total         int
	Patched       int
	Skipped       int
	Recovered     int
	Unrecoverable int
	Rejected      int
	Cancelled     int
	Reports       []*domain.PatchReport
}

// PatchProgress reports a finished assembly during a batch run
type PatchProgress struct {
	Current  int
	Total    int
	Assembly string
	Outcome  domain.Outcome
}

// PatchAll patches the assemblies one after another.
// Per-assembly failures never stop the batch; a cancelled context does.
// With an OutputDir, assemblies sharing a file name are rejected without
// patching any of them.
// progressChan may be nil; otherwise it is closed when PatchAll returns.
func (s *PatchService) PatchAll(ctx context.Context, req PatchAllRequest, progressChan chan<- PatchProgress) *PatchAllResponse {
	if progressChan != nil {
		defer close(progressChan)
	}

	response := &PatchAllResponse{
		Total:   len(req.Assemblies),
		Reports: make([]*domain.PatchReport, 0, len(req.Assemblies)),
	}

	conflicts := outputConflicts(req)

	for i, assembly := range req.Assemblies {
		select {
		case <-ctx.Done():
			response.Cancelled = len(req.Assemblies) - i
			return response
		default:
		}

		output := ""
		if req.OutputDir != "" {
			output = filepath.Join(req.OutputDir, filepath.Base(assembly))
		}

		var report *domain.PatchReport
		if n := conflicts[outputKey(output)]; n > 1 {
			err := fmt.Errorf("%w: %d assemblies would write %s", domain.ErrOutputConflict, n, output)
			report = s.reject(ctx, assembly, output, err)
		} else {
			report = s.Patch(ctx, assembly, output, req.References)
		}
		response.Reports = append(response.Reports, report)
		response.count(report.Outcome)

		if progressChan != nil {
			progressChan <- PatchProgress{
				Current:  i + 1,
				Total:    len(req.Assemblies),
				Assembly: assembly,
				Outcome:  report.Outcome,
			}
		}
	}

	return response
}

// outputConflicts counts how many distinct assemblies map to each output path
func outputConflicts(req PatchAllRequest) map[string]int {
	counts := make(map[string]int)
	if req.OutputDir == "" {
		return counts
	}

	seen := make(map[string]bool)
	for _, assembly := range req.Assemblies {
		src, err := filepath.Abs(assembly)
		if err != nil {
			src = filepath.Clean(assembly)
		}
		if seen[src] {
			continue
		}
		seen[src] = true
		counts[outputKey(filepath.Join(req.OutputDir, filepath.Base(assembly)))]++
	}
	return counts
}

// outputKey folds case so Foo.dll and foo.dll collide on case-insensitive volumes
func outputKey(path string) string {
	return strings.ToLower(filepath.Clean(path))
}

func (r *PatchAllResponse) count(outcome domain.Outcome) {
	switch {
	case outcome == domain.OutcomePatched:
		r.Patched++
	case outcome.IsSkip():
		r.Skipped++
	case outcome == domain.OutcomeRecovered:
		r.Recovered++
	case outcome == domain.OutcomeUnrecoverable:
		r.Unrecoverable++
	case outcome == domain.OutcomeRejected:
		r.Rejected++
	}
}
