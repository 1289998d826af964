// Package export implements the album export workflow: resolving or creating
// the target folder, partitioning photos by owning space, submitting the
// asynchronous copy tasks, and polling them to completion.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dsmtools/syno-photos-util/internal/album"
	"github.com/dsmtools/syno-photos-util/internal/syno"
)

// pollInterval is the delay between task-status queries.
const pollInterval = 1 * time.Second

// dotCycle is how many progress dots are printed before the line is wiped.
const dotCycle = 3

// API is the subset of the session client the orchestrator needs.
type API interface {
	ListItems(ctx context.Context, idKey, idValue string, limit int) ([]syno.Item, error)
	GetFolderByName(ctx context.Context, name string) (syno.Folder, error)
	CreateFolder(ctx context.Context, name string, parentID int) (syno.Folder, error)
	CopyPhotos(ctx context.Context, photoIDs []int, space syno.Space, targetFolderID int) (syno.TaskInfo, error)
	GetTaskStatus(ctx context.Context, ids []int) ([]syno.TaskInfo, error)
}

// Summary aggregates the per-item outcomes of all copy tasks.
type Summary struct {
	Copied  int
	Skipped int
	Failed  int
	Aborted int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d copied, %d skipped, %d failed, %d canceled",
		s.Copied, s.Skipped, s.Failed, s.Aborted)
}

// Orchestrator drives one export run. Out receives user-facing progress
// output; warnings go to the logger.
type Orchestrator struct {
	api    API
	out    io.Writer
	logger *slog.Logger

	// sleepFunc is called to wait between status polls. Tests override it
	// to avoid real delays.
	sleepFunc func(ctx context.Context, d time.Duration) error
}

// NewOrchestrator creates an export orchestrator.
func NewOrchestrator(api API, out io.Writer, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		api:       api,
		out:       out,
		logger:    logger,
		sleepFunc: sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NormalizePath turns user input into the absolute folder path the API
// expects: trimmed, single leading slash, no trailing slash.
func NormalizePath(path string) string {
	return "/" + strings.Trim(strings.TrimSpace(path), "/")
}

// EnsureFolder resolves the normalized target path in the Personal Space.
// A missing folder is created segment by segment when create is set, and is
// a descriptive error otherwise.
func (o *Orchestrator) EnsureFolder(ctx context.Context, path string, create bool) (syno.Folder, error) {
	path = NormalizePath(path)

	folder, err := o.api.GetFolderByName(ctx, path)
	if err == nil {
		return folder, nil
	}

	if !errors.Is(err, syno.ErrNoAccessOrNotFound) {
		return syno.Folder{}, err
	}

	if !create {
		return syno.Folder{}, fmt.Errorf(
			"folder '%s' does not exist in Personal Space (use --create to create it)", path)
	}

	return o.createFolderPath(ctx, path)
}

// createFolderPath walks the path component by component, creating each
// missing segment under the last resolved parent. Once one segment is
// missing, all following segments are created without further lookups.
func (o *Orchestrator) createFolderPath(ctx context.Context, path string) (syno.Folder, error) {
	segments := make([]string, 0)

	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}

		if strings.TrimSpace(seg) == "" {
			return syno.Folder{}, fmt.Errorf("'%s' is not a valid folder path", path)
		}

		segments = append(segments, seg)
	}

	parent, err := o.api.GetFolderByName(ctx, "/")
	if err != nil {
		return syno.Folder{}, err
	}

	exists := true
	pathSoFar := ""

	for _, segment := range segments {
		pathSoFar += "/" + segment

		if exists {
			folder, err := o.api.GetFolderByName(ctx, pathSoFar)

			switch {
			case err == nil:
				parent = folder

				continue
			case errors.Is(err, syno.ErrNoAccessOrNotFound):
				exists = false
			default:
				return syno.Folder{}, err
			}
		}

		parent, err = o.api.CreateFolder(ctx, segment, parent.ID)
		if err != nil {
			return syno.Folder{}, err
		}

		o.logger.Info("created folder", slog.String("path", pathSoFar))
	}

	return parent, nil
}

// Partition splits photos by owning space. Owner id 0 is the sentinel for
// Shared Space ownership; every other photo belongs to someone's Personal
// Space. The split is total and disjoint.
func Partition(items []syno.Item) (personal, shared []int) {
	for _, item := range items {
		if item.OwnerUserID == 0 {
			shared = append(shared, item.ID)
		} else {
			personal = append(personal, item.ID)
		}
	}

	return personal, shared
}

// submission is the outcome of one copy-task submission.
type submission struct {
	task      syno.TaskInfo
	submitted bool
	err       error
}

// Run exports the album's photos into the target folder and waits for the
// copy tasks to finish. Per-task failures are aggregated into the summary,
// not turned into a command failure.
func (o *Orchestrator) Run(
	ctx context.Context,
	a album.Album,
	target syno.Folder,
	settings syno.UserSettings,
) (Summary, error) {
	idKey, idValue := a.IDParam()

	photos, err := o.api.ListItems(ctx, idKey, idValue, a.ItemCount())
	if err != nil {
		return Summary{}, err
	}

	fmt.Fprintf(o.out, "Copying %d items from album '%s' to folder '%s' in Personal Space\n",
		len(photos), a.Name(), target.Name)

	submissions := o.submitCopyTasks(ctx, photos, target.ID, settings)

	return o.awaitTasks(ctx, submissions)
}

// submitCopyTasks issues one copy task per non-empty partition, personal and
// shared concurrently. A shared partition the account cannot reach is
// skipped with a warning instead of submitted.
func (o *Orchestrator) submitCopyTasks(
	ctx context.Context,
	photos []syno.Item,
	targetFolderID int,
	settings syno.UserSettings,
) []submission {
	personal, shared := Partition(photos)

	if len(shared) > 0 && !settings.HasTeamSpaceAccess() {
		o.logger.Warn("album contains Shared Space items but you don't have access to it; skipping",
			slog.Int("items", len(shared)))

		shared = nil
	}

	results := make([]submission, 2)

	g, gctx := errgroup.WithContext(ctx)

	submit := func(idx int, ids []int, space syno.Space) {
		if len(ids) == 0 {
			return
		}

		g.Go(func() error {
			task, err := o.api.CopyPhotos(gctx, ids, space, targetFolderID)
			results[idx] = submission{task: task, submitted: err == nil, err: err}

			return nil
		})
	}

	submit(0, personal, syno.SpacePersonal)
	submit(1, shared, syno.SpaceShared)

	// Submission errors are reported per task, never propagated.
	_ = g.Wait()

	return results
}

// awaitTasks polls the submitted tasks until none remain pending and
// aggregates their outcome counters. Submission failures are reported up
// front; the poll loop runs with whatever tasks did start.
func (o *Orchestrator) awaitTasks(ctx context.Context, submissions []submission) (Summary, error) {
	var taskIDs []int

	for _, s := range submissions {
		if s.err != nil {
			fmt.Fprintf(o.out, "Error: %v\n", s.err)

			continue
		}

		if s.submitted {
			taskIDs = append(taskIDs, s.task.ID)
		}
	}

	var summary Summary

	dots := 0

	for len(taskIDs) > 0 {
		if err := o.sleepFunc(ctx, pollInterval); err != nil {
			return summary, err
		}

		if dots == dotCycle {
			fmt.Fprint(o.out, "\r   \r")

			dots = 0
		} else {
			fmt.Fprint(o.out, ".")

			dots++
		}

		tasks, err := o.api.GetTaskStatus(ctx, taskIDs)
		if err != nil {
			return summary, err
		}

		taskIDs = taskIDs[:0]

		for _, t := range tasks {
			if t.Pending() {
				taskIDs = append(taskIDs, t.ID)

				continue
			}

			summary.Copied += t.Completion - t.Skip - t.Error
			summary.Skipped += t.Skip
			summary.Failed += t.Error
			summary.Aborted += t.Total - (t.Completion + t.Skip + t.Error)
		}
	}

	fmt.Fprintln(o.out)

	if summary.Failed != 0 {
		o.logger.Warn("some items were not copied; inspect the Synology Photos web interface for details",
			slog.Int("failed", summary.Failed))
	}

	return summary, nil
}
