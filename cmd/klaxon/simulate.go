package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"klaxon/internal/callsite"
	"klaxon/internal/crashlog"
	"klaxon/internal/diag"
	"klaxon/internal/diagmgr"
)

var (
	codeWorkerFailure = diag.Code{ID: 100, Name: "WORKER_FAILURE"}
	codeSimProgress   = diag.Code{ID: 101, Name: "SIM_PROGRESS"}
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a concurrent diagnostic workload and report what the manager collected",
	Long:  `Simulate spins up worker goroutines that accumulate errors on their own threads, captures them into transports, and splices everything into the primary thread, where a mark claims the lot`,
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().Int("workers", 4, "number of worker goroutines")
	simulateCmd.Flags().Int("errors", 3, "errors each worker raises")
	simulateCmd.Flags().String("crashlog-dir", "", "directory for per-thread crash logs (empty = discard)")
	simulateCmd.Flags().String("emit-bundle", "", "write the combined transport bundle to this file")
}

// countingDelegate tallies intake calls so the summary can show what the
// delegate saw.
type countingDelegate struct {
	errors, warnings, statuses int
}

func (d *countingDelegate) IssueError(diag.Diagnostic) { d.errors++ }

func (d *countingDelegate) IssueWarning(diag.Diagnostic) { d.warnings++ }

func (d *countingDelegate) IssueStatus(diag.Diagnostic) { d.statuses++ }

func (d *countingDelegate) IssueFatalError(callsite.Site, string) {}

func runSimulate(cmd *cobra.Command, args []string) error {
	workers, _ := cmd.Flags().GetInt("workers")
	errsPerWorker, _ := cmd.Flags().GetInt("errors")
	crashDir, _ := cmd.Flags().GetString("crashlog-dir")
	bundlePath, _ := cmd.Flags().GetString("emit-bundle")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	cfg, err := loadFileConfig(".")
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("workers") && cfg.Simulate.Workers > 0 {
		workers = cfg.Simulate.Workers
	}
	if !cmd.Flags().Changed("errors") && cfg.Simulate.Errors > 0 {
		errsPerWorker = cfg.Simulate.Errors
	}
	if crashDir == "" {
		crashDir = cfg.Crashlog.Dir
	}

	opts := []diagmgr.Option{diagmgr.WithOutput(cmd.ErrOrStderr())}
	if crashDir != "" {
		sink, err := crashlog.NewFile(crashDir)
		if err != nil {
			return err
		}
		opts = append(opts, diagmgr.WithCrashLogSink(sink))
	}
	mgr := diagmgr.New(opts...)
	mgr.SetQuiet(quiet || cfg.Output.Quiet)

	del := &countingDelegate{}
	mgr.SetDelegate(del)
	defer mgr.UnsetDelegate(del)

	noticed := 0
	cancel := mgr.ErrorNotices().Subscribe(func(diag.Diagnostic) { noticed++ })
	defer cancel()

	primary := mgr.Attach()
	primary.PostStatus(codeSimProgress, callsite.Here(0),
		fmt.Sprintf("simulating %d workers, %d errors each", workers, errsPerWorker), nil, false)

	mk := primary.Mark()
	defer mk.Release()

	// Workers accumulate on their own threads and hand bundles back over
	// a channel; only the primary thread splices.
	bundles := make(chan *diagmgr.Transport, workers)
	g, _ := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			th := mgr.Attach()
			defer th.Detach()
			for i := 0; i < errsPerWorker; i++ {
				th.AppendError(diag.NewError(codeWorkerFailure, callsite.Here(0),
					fmt.Sprintf("worker %d failed step %d", th.ID(), i)))
			}
			// Off the primary thread this degrades to a printed line.
			th.PostStatus(codeSimProgress, callsite.Here(0),
				fmt.Sprintf("worker %d captured %d errors", th.ID(), th.PendingErrorCount()), nil, false)
			bundles <- th.CaptureTransport()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	close(bundles)

	combined := &diagmgr.Transport{}
	for tr := range bundles {
		if bundlePath != "" {
			combined = mergeForEmit(combined, tr, primary)
			continue
		}
		tr.Post(primary)
	}
	if bundlePath != "" {
		if err := emitBundle(combined, bundlePath); err != nil {
			return err
		}
		combined.Post(primary)
	}

	claimed := mk.Query()
	summaryHeading := color.New(color.Bold)
	summaryHeading.Fprintln(cmd.OutOrStdout(), "simulation summary:")
	fmt.Fprintf(cmd.OutOrStdout(), "  workers:          %d\n", workers)
	fmt.Fprintf(cmd.OutOrStdout(), "  errors claimed:   %d\n", len(claimed))
	fmt.Fprintf(cmd.OutOrStdout(), "  delegate errors:  %d\n", del.errors)
	fmt.Fprintf(cmd.OutOrStdout(), "  delegate statuses: %d\n", del.statuses)
	fmt.Fprintf(cmd.OutOrStdout(), "  notices observed: %d\n", noticed)
	for id, n := range mgr.PendingByThread() {
		fmt.Fprintf(cmd.OutOrStdout(), "  thread %d pending: %d\n", id, n)
	}

	// Consume the claimed range so crash logs end clean.
	mk.Clean()
	return nil
}

// mergeForEmit combines two bundles. Transport exposes no append, so the
// records round-trip through the primary store and are recaptured once
// both bundles have landed.
func mergeForEmit(acc, tr *diagmgr.Transport, primary *diagmgr.Thread) *diagmgr.Transport {
	acc.Post(primary)
	tr.Post(primary)
	return primary.CaptureTransport()
}

func emitBundle(tr *diagmgr.Transport, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create bundle file: %w", err)
	}
	if err := tr.Encode(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
