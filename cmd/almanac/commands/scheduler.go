package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/almanac/internal/scheduler"
	"github.com/wonny/almanac/internal/scheduler/jobs"
)

var (
	schedulerCron string
	schedulerNow  bool
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the weekly pipeline on a schedule",
	Long: `Starts the cron scheduler with the weekly reporting job for the
domain. The default schedule is Monday 6 AM; failed runs are retried by
the scheduler, the pipeline itself never retries.

Example:
  go run ./cmd/almanac scheduler
  go run ./cmd/almanac scheduler --cron "0 7 * * 2" --now`,
	RunE: runScheduler,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.Flags().StringVar(&schedulerCron, "cron", "", "cron expression (default Monday 6 AM)")
	schedulerCmd.Flags().BoolVar(&schedulerNow, "now", false, "also trigger the job immediately")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	d, err := setup()
	if err != nil {
		return err
	}
	defer d.Close()

	sched := scheduler.New(d.log)
	job := jobs.NewWeeklyRunJob(d.runner, domain, schedulerCron, d.log)
	if err := sched.AddJob(job); err != nil {
		return fmt.Errorf("add job: %w", err)
	}

	sched.Start()
	defer sched.Stop()

	if schedulerNow {
		if err := sched.RunJob(job.Name()); err != nil {
			return err
		}
	}

	fmt.Printf("Scheduler running, job %s on %q. Ctrl-C to stop.\n", job.Name(), job.Schedule())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return nil
}
