package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/HanzoRazer/emo-options-bot-sub001/internal/config"
	"github.com/HanzoRazer/emo-options-bot-sub001/internal/logging"
	"github.com/HanzoRazer/emo-options-bot-sub001/internal/strategy"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "optionsengine",
		Short: "Options trade synthesis and risk gating",
		Long: `optionsengine synthesizes multi-leg option orders from trade directives
and runs them through a hierarchy of hard risk checks.

The engine itself performs no market data fetching, order staging, or
persistence; inputs are supplied as JSON files and results printed as a
report or JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/optionsengine)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newEvaluateCmd(app))
	rootCmd.AddCommand(newLimitsCmd(app))
	rootCmd.AddCommand(newStrategiesCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("optionsengine v%s\n", Version)
			}
		},
	}
}

func newLimitsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "limits",
		Short: "Show effective risk limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			l := app.Config.Limits
			if output.IsJSON() {
				return output.JSON(l)
			}

			output.Bold("Capital")
			output.Printf("  Per-trade risk:       %s of equity\n", FormatPct(l.MaxCapitalAtRiskPerTradePct))
			output.Printf("  Portfolio risk:       %s of equity\n", FormatPct(l.MaxCapitalAtRiskPortfolioPct))
			output.Printf("  Daily loss limit:     %s of equity\n", FormatPct(l.MaxDailyLossPct))
			output.Println()

			output.Bold("Positions")
			output.Printf("  Max contracts/trade:  %d\n", l.MaxSinglePositionSize)
			output.Printf("  Max open positions:   %d\n", l.MaxTotalPositions)
			output.Printf("  Sizing cap:           %d contracts\n", l.MaxContracts)
			output.Println()

			output.Bold("Greeks caps")
			output.Printf("  Delta: %.1f  Gamma: %.1f  Theta: %.1f  Vega: %.1f\n",
				l.MaxPortfolioDelta, l.MaxPortfolioGamma, l.MaxPortfolioTheta, l.MaxPortfolioVega)
			output.Println()

			output.Bold("Liquidity")
			output.Printf("  Min volume:           %d\n", l.MinVolume)
			output.Printf("  Min open interest:    %d\n", l.MinOpenInterest)
			output.Printf("  Max bid/ask spread:   %s of mid\n", FormatPct(l.MaxBidAskSpreadPct))
			output.Println()

			output.Bold("Other")
			output.Printf("  Concentration cap:    %s of equity\n", FormatPct(l.MaxSingleSymbolAllocationPct))
			output.Printf("  Margin utilization:   %s\n", FormatPct(l.MaxMarginUtilizationPct))
			output.Printf("  Min DTE:              %d\n", l.MinDaysToExpiry)
			output.Printf("  Risk score ceiling:   %.0f\n", l.MaxOverallRiskScore)
			if len(l.BlackoutSymbols) > 0 {
				output.Printf("  Blackout symbols:     %v\n", l.BlackoutSymbols)
			}
			return nil
		},
	}
}

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List supported strategy families",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			families := strategy.SupportedFamilies()
			if output.IsJSON() {
				return output.JSON(families)
			}
			for _, f := range families {
				t, _ := strategy.TemplateFor(f)
				kind := "debit"
				if t.Credit {
					kind = "credit"
				}
				output.Printf("  %-20s %d legs, %s, DTE %d-%d\n",
					f, len(t.Legs), kind, t.MinDTE, t.MaxDTE)
			}
			return nil
		},
	}
}
