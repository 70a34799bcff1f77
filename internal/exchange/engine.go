// Package exchange implements the import/export engine: serializing the
// local data set to the portable Payback export format, parsing it back,
// reconciling imported identities against the local roster, deduplicating
// groups and expenses, and mirroring the merged result to a remote store
// in bounded chunks.
package exchange

import (
	"context"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/payback-app/backend/internal/models"
)

// ResultKind is the overall outcome of an import.
type ResultKind string

const (
	// ResultSuccess: everything parsed, merged and submitted.
	ResultSuccess ResultKind = "SUCCESS"

	// ResultIncompatibleFormat: the text is not an export, or the single
	// submission request failed so there is nothing partial to report.
	ResultIncompatibleFormat ResultKind = "INCOMPATIBLE_FORMAT"

	// ResultNeedsResolution: conflicts were found and no resolutions
	// were supplied. Not an error; the caller has to decide and retry.
	ResultNeedsResolution ResultKind = "NEEDS_RESOLUTION"

	// ResultPartialSuccess: the local merge went through but some rows
	// or chunks were skipped; details are in the warnings.
	ResultPartialSuccess ResultKind = "PARTIAL_SUCCESS"
)

// Result is the four-way outcome of Engine.Import.
type Result struct {
	Kind      ResultKind `json:"kind"`
	Summary   Summary    `json:"summary"`
	Conflicts []Conflict `json:"conflicts,omitempty"`
	Warnings  []string   `json:"warnings,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// Engine runs import and export operations against one local store and
// one remote submitter. It holds no per-operation state; all mapping
// state lives inside a single Import call.
type Engine struct {
	db        *gorm.DB
	submitter Submitter
	chunkSize int
}

// New creates an engine. A nil submitter disables remote mirroring.
func New(db *gorm.DB, submitter Submitter, chunkSize int) Engine {
	return Engine{
		db:        db,
		submitter: submitter,
		chunkSize: chunkSize,
	}
}

// Import parses the export text, reconciles it against the local store
// and, on success, persists the merged records and mirrors them to the
// remote store.
//
// The returned error is non-nil only for infrastructure failures
// (database unavailable); every outcome of the import itself is
// expressed through the Result.
func (e Engine) Import(ctx context.Context, text string, resolutions Resolutions) (Result, error) {
	snapshot, err := Parse(text)
	if err != nil {
		importsTotal.WithLabelValues("incompatible").Inc()
		return Result{Kind: ResultIncompatibleFormat, Error: err.Error()}, nil
	}

	local, err := LoadLocal(e.db)
	if err != nil {
		return Result{}, err
	}

	if resolutions == nil {
		if conflicts := DetectConflicts(snapshot, local); len(conflicts) > 0 {
			importsTotal.WithLabelValues("needs_resolution").Inc()
			return Result{Kind: ResultNeedsResolution, Conflicts: conflicts}, nil
		}
	}

	merge := Merge(snapshot, &local, resolutions)

	err = persist(e.db, merge.Mutations)
	if err != nil {
		return Result{}, err
	}

	importedRecords.WithLabelValues("friends").Add(float64(merge.Summary.FriendsAdded))
	importedRecords.WithLabelValues("groups").Add(float64(merge.Summary.GroupsAdded))
	importedRecords.WithLabelValues("expenses").Add(float64(merge.Summary.ExpensesAdded))

	warnings := merge.Warnings

	if e.submitter != nil {
		coordinator := Coordinator{Submitter: e.submitter, ChunkSize: e.chunkSize}
		submission := coordinator.Submit(ctx, snapshot, merge)
		chunkFailures.Add(float64(len(submission.Errors)))

		// With a single request there is nothing partial to report: the
		// local store is updated, the mirror is not.
		if submission.Requests == 1 && len(submission.Errors) > 0 {
			importsTotal.WithLabelValues("incompatible").Inc()
			return Result{
				Kind:    ResultIncompatibleFormat,
				Summary: merge.Summary,
				Error:   submission.Errors[0],
			}, nil
		}

		warnings = append(warnings, submission.Errors...)

		log.Info().
			Int("requests", submission.Requests).
			Int("friends", submission.Created.Friends).
			Int("groups", submission.Created.Groups).
			Int("expenses", submission.Created.Expenses).
			Msg("bulk submission finished")
	}

	result := Result{Kind: ResultSuccess, Summary: merge.Summary, Warnings: warnings}
	if len(warnings) > 0 {
		result.Kind = ResultPartialSuccess
		importsTotal.WithLabelValues("partial").Inc()
	} else {
		importsTotal.WithLabelValues("success").Inc()
	}

	return result, nil
}

// ExportAll serializes the complete local snapshot.
func (e Engine) ExportAll(options ExportOptions) (string, error) {
	local, err := LoadLocal(e.db)
	if err != nil {
		return "", err
	}

	return Export(local, options), nil
}

// Friends lists the local friend roster.
func (e Engine) Friends() ([]models.Friend, error) {
	var friends []models.Friend
	err := e.db.Find(&friends).Error
	return friends, err
}

// Groups lists all groups with their members.
func (e Engine) Groups() ([]LocalGroup, error) {
	return loadGroups(e.db)
}

// Expenses lists all expenses with their dependent rows.
func (e Engine) Expenses() ([]LocalExpense, error) {
	return loadExpenses(e.db)
}
