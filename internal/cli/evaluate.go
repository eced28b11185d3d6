package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HanzoRazer/emo-options-bot-sub001/internal/models"
	"github.com/HanzoRazer/emo-options-bot-sub001/internal/risk"
	"github.com/HanzoRazer/emo-options-bot-sub001/internal/strategy"
)

// evaluateResult bundles the full pipeline output for JSON mode.
type evaluateResult struct {
	Trade      *models.ExecutableTrade  `json:"trade"`
	Validation *models.ValidationResult `json:"validation"`
	Stress     *risk.StressReport       `json:"stress,omitempty"`
}

func newEvaluateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Synthesize a trade and run it through the risk gate",
		Long: `Evaluate a trade directive against an option chain and portfolio snapshot.

All three inputs are JSON files. The directive describes what to trade,
the chain supplies quotes per expiration, and the portfolio supplies the
account state the risk gate checks against.`,
		Example: `  optionsengine evaluate --directive d.json --chain chain.json --portfolio pf.json
  optionsengine evaluate -d d.json -c chain.json -p pf.json --stress --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			directivePath, _ := cmd.Flags().GetString("directive")
			chainPath, _ := cmd.Flags().GetString("chain")
			portfolioPath, _ := cmd.Flags().GetString("portfolio")
			runStress, _ := cmd.Flags().GetBool("stress")

			var directive models.TradeDirective
			if err := readJSONFile(directivePath, &directive); err != nil {
				output.Error("Failed to read directive: %v", err)
				return err
			}
			var chain models.ChainSet
			if err := readJSONFile(chainPath, &chain); err != nil {
				output.Error("Failed to read chain: %v", err)
				return err
			}
			var portfolio models.PortfolioSnapshot
			if err := readJSONFile(portfolioPath, &portfolio); err != nil {
				output.Error("Failed to read portfolio: %v", err)
				return err
			}

			// Fractional budgets resolve against equity here, at the
			// boundary, so the engine itself stays portfolio-free.
			if directive.RiskBudgetFraction > 0 && directive.RiskBudget == 0 {
				directive.RiskBudget = directive.EffectiveRiskBudget(portfolio.TotalEquity)
			}

			limits := &app.Config.Limits

			synth := strategy.NewSynthesizer(app.Config.Synthesis, app.Logger)
			trade, err := synth.Synthesize(&directive, &chain, limits)
			if err != nil {
				output.Error("Synthesis failed: %v", err)
				return err
			}

			engine := risk.NewEngine(app.Logger)
			validation, err := engine.Validate(trade, &portfolio, limits)
			if err != nil {
				output.Error("Validation failed: %v", err)
				return err
			}

			result := evaluateResult{Trade: trade, Validation: validation}
			if runStress {
				result.Stress = risk.NewStressTester().Run(trade, validation)
			}

			if output.IsJSON() {
				return output.JSON(result)
			}
			renderReport(output, &result)
			return nil
		},
	}

	cmd.Flags().StringP("directive", "d", "", "trade directive JSON file (required)")
	cmd.Flags().StringP("chain", "c", "", "option chain JSON file (required)")
	cmd.Flags().StringP("portfolio", "p", "", "portfolio snapshot JSON file (required)")
	cmd.Flags().Bool("stress", false, "run stress scenarios")
	cmd.MarkFlagRequired("directive")
	cmd.MarkFlagRequired("chain")
	cmd.MarkFlagRequired("portfolio")

	return cmd
}

func readJSONFile(path string, target interface{}) error {
	if path == "" {
		return fmt.Errorf("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
