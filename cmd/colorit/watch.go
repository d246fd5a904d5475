// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/colorit/colorit/internal/issue"
	"github.com/colorit/colorit/internal/outcome"
	"github.com/colorit/colorit/internal/watch"
	"github.com/colorit/colorit/pkg/tint"

	"github.com/spf13/cobra"
)

func newWatchCommand(app *App, flags *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-apply colors whose icon files get deleted",
		Long: `Guard every folder in the history. When a folder's icon or desktop.ini
is deleted or renamed, for example by a sync client or a cleanup tool, the
recorded color is applied again once things settle.

Runs until interrupted (Ctrl+C).`,
		Args: cobra.NoArgs,
		RunE: withErrorRendering(app, flags, func(cmd *cobra.Command, _ []string) error {
			s, err := app.session(cmd.Context(), flags)
			if err != nil {
				return err
			}
			return runGuard(cmd.Context(), app, s, flags)
		}),
	}
}

// runGuard watches the folders of the history and re-applies their colors
// when an override artifact vanishes. It blocks until ctx is done.
func runGuard(ctx context.Context, app *App, s *session, flags *rootFlagValues) error {
	entries, out := s.engine.ListHistory()
	reportOutcome(app.stderr, out, flags.verbose, app.colorScheme)

	folders := make([]string, len(entries))
	for i, e := range entries {
		folders[i] = e.Path
	}

	w, err := watch.New(watch.Config{
		Folders:   folders,
		Artifacts: []string{s.cfg.Binding.IconFile.String(), s.cfg.Binding.DescriptorFile.String()},
		Debounce:  s.cfg.Watch.Debounce,
		OnVanish:  reapply(app, s, flags),
		Logger:    s.logger.WithPrefix("watch"),
	})
	if errors.Is(err, watch.ErrNoFolders) {
		fmt.Fprintln(app.stdout, SubtitleStyle.Render("No colored folders to guard."))
		return nil
	}
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("start guard watcher").
			WithIssue(issue.WatchFailedId).
			Wrap(err).
			BuildError()
	}

	fmt.Fprintf(app.stdout, "%s Guarding %d folder(s) (Ctrl+C to stop)...\n", PathStyle.Render("→"), len(w.Folders()))
	if err := w.Run(ctx); err != nil {
		return issue.NewErrorContext().
			WithOperation("guard folders").
			WithIssue(issue.WatchFailedId).
			Wrap(err).
			BuildError()
	}
	return nil
}

// reapply restores the recorded color of every folder passed to it. The
// history is read fresh under its lock for each folder, so folders removed
// or forgotten by other commands since the watcher started are skipped.
func reapply(app *App, s *session, flags *rootFlagValues) func(context.Context, []string) error {
	return func(ctx context.Context, folders []string) error {
		var errs []error
		for _, folder := range folders {
			var (
				c   tint.ColorSpec
				ok  bool
				out outcome.Outcome
				err error
			)
			s.exclusive(func() {
				if c, ok = s.engine.ColorFor(folder); ok {
					out, err = s.engine.Apply(ctx, folder, c)
				}
			})
			switch {
			case !ok:
				s.logger.Debug("folder no longer in history, not re-applying", "path", folder)
				continue
			case err != nil:
				errs = append(errs, engineError("re-apply color", folder, err))
				continue
			}
			fmt.Fprintf(app.stdout, "%s Re-applied %s %s\n", SuccessStyle.Render("✓"), PathStyle.Render(folder), swatch(c, c.Hex()))
			reportOutcome(app.stderr, out, flags.verbose, app.colorScheme)
		}
		return errors.Join(errs...)
	}
}
