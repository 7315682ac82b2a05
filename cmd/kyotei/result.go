package main

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"

	"github.com/kyotei-ai/kyotei-cli/internal/api"
	"github.com/kyotei-ai/kyotei-cli/internal/cli"
	"github.com/kyotei-ai/kyotei-cli/internal/common"
	"github.com/kyotei-ai/kyotei-cli/internal/model"
)

// resultPattern matches a finishing order like "1-2-3".
var resultPattern = regexp.MustCompile(`^[1-6]-[1-6]-[1-6]$`)

func resultCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "result",
		Short: "Register an actual race outcome",
		Long: `Report how a predicted race actually finished.

The outcome is registered with the backend so it can track accuracy, and
recorded in the local history. Transient backend failures are retried;
rejections are not.`,
		RunE: runResult,
	}

	// Flags
	cmd.Flags().String("id", "", "prediction id from the analysis (required)")
	cmd.Flags().String("finish", "", "actual finishing order, e.g. 1-2-3 (required)")
	cmd.Flags().Float64("odds", 0, "payout odds of the winning combination")

	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("finish")

	return cmd
}

func runResult(cmd *cobra.Command, _ []string) error {
	id, _ := cmd.Flags().GetString("id")
	finish, _ := cmd.Flags().GetString("finish")
	odds, _ := cmd.Flags().GetFloat64("odds")

	if !resultPattern.MatchString(finish) {
		return common.NewUserError("finishing order must look like 1-2-3 with boats 1-6", common.ErrInvalidConfig)
	}

	report := model.ResultReport{
		PredictionID: id,
		ActualResult: finish,
		ActualOdds:   odds,
	}

	client := newClient()
	operation := func() error {
		_, err := client.RegisterResult(cmd.Context(), report)
		if err == nil {
			return nil
		}

		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Permanent() {
			// The backend rejected the report; retrying won't change that.
			return backoff.Permanent(err)
		}
		slog.Warn("result registration failed, retrying", "prediction_id", id, "error", err)
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(bo, cmd.Context())); err != nil {
		return fmt.Errorf("failed to register result: %w", err)
	}

	// Record locally too; the backend forgets old predictions.
	if store, err := openStore(); err == nil {
		if err := store.SaveResult(cmd.Context(), report); err != nil {
			slog.Warn("failed to record result locally", "prediction_id", id, "error", err)
		}
		_ = store.Close()
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("結果 %s を登録しました (%s)", finish, id)))
	return nil
}
