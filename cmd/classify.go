package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hearing-server/config"
	"hearing-server/dao/redis"
	"hearing-server/db"
	"hearing-server/hearingtime"
	"hearing-server/logging"
	"hearing-server/models/hearing"
	services "hearing-server/service"
	"hearing-server/util"
)

type classifyOutput struct {
	Now         time.Time                `json:"now"`
	Today       *services.TodayView      `json:"today"`
	Upcoming    []hearing.HearingRecord  `json:"upcoming"`
	Completed   []hearing.HearingRecord  `json:"completed"`
	Quarantined []hearing.QuarantinedRow `json:"quarantined"`
}

func newClassifyCmd(configPath *string) *cobra.Command {
	var file string
	var nowFlag string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify hearings from a JSON dump of case rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			if nowFlag != "" {
				parsed, err := time.Parse(time.RFC3339, nowFlag)
				if err != nil {
					return fmt.Errorf("invalid --now %q: want RFC3339: %w", nowFlag, err)
				}
				now = parsed
			}
			return runClassify(cmd, *configPath, file, now)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON array of case rows")
	cmd.Flags().StringVar(&nowFlag, "now", "", "evaluation instant in RFC3339 (default: current time)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runClassify(cmd *cobra.Command, configPath, file string, now time.Time) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	rows, err := util.ReadCaseRowsFromJSON(file)
	if err != nil {
		return err
	}
	result := services.IngestCaseRows(rows, logger)

	dao := redis.NewRedisHearingDAO(db.NewMockRedisClient())
	if err := dao.SaveSnapshot(&hearing.Snapshot{
		ID:          "classify",
		FetchedAt:   now.UTC(),
		Records:     result.Records,
		Quarantined: result.Quarantined,
	}); err != nil {
		return err
	}

	zone, err := cfg.Zone()
	if err != nil {
		return err
	}
	engine := hearingtime.NewEngine(zone, cfg.ActiveWindow, cfg.UpcomingLimit)
	svc := services.NewHearingService(dao, engine, func() time.Time { return now })

	out := classifyOutput{Now: now, Quarantined: result.Quarantined}
	if out.Today, err = svc.Today(); err != nil {
		return err
	}
	if out.Upcoming, err = svc.Upcoming(); err != nil {
		return err
	}
	if out.Completed, err = svc.Completed(); err != nil {
		return err
	}
	logger.Debug("Classified hearings", zap.Int("records", len(result.Records)), zap.Time("now", now))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
