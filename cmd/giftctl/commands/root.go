package commands

import (
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/LovationAdmin/giftfinder-api/config"
	"github.com/LovationAdmin/giftfinder-api/models"
	"github.com/LovationAdmin/giftfinder-api/services"
	"github.com/LovationAdmin/giftfinder-api/utils"
)

// profileFlags are shared by query and search.
type profileFlags struct {
	occasion     string
	budget       float64
	age          int
	gender       string
	interests    []string
	relationship string
	personality  string
}

func (f *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.occasion, "occasion", "o", "", "occasion, e.g. Birthday (required)")
	cmd.Flags().Float64VarP(&f.budget, "budget", "b", 0, "budget limit in rupees (required)")
	cmd.Flags().IntVar(&f.age, "age", -1, "recipient age")
	cmd.Flags().StringVarP(&f.gender, "gender", "g", "", "recipient gender")
	cmd.Flags().StringSliceVarP(&f.interests, "interest", "i", nil, "recipient interest (repeatable)")
	cmd.Flags().StringVarP(&f.relationship, "relationship", "r", "", "relationship to the recipient")
	cmd.Flags().StringVarP(&f.personality, "personality", "p", "", "personality type")
}

func (f *profileFlags) profile() models.RecipientProfile {
	p := models.RecipientProfile{
		Occasion:        f.occasion,
		BudgetLimit:     f.budget,
		RecipientGender: f.gender,
		Interests:       f.interests,
		Relationship:    f.relationship,
		PersonalityType: f.personality,
	}
	if f.age >= 0 {
		age := f.age
		p.RecipientAge = &age
	}
	return p
}

type rootOptions struct {
	rulesFile string
	jsonOut   bool
	noColor   bool
	verbose   bool
}

// NewRootCmd builds the giftctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "giftctl",
		Short: "Gift finder pipeline from the command line",
		Long: `giftctl builds search queries from a recipient profile and runs the
gift retrieval pipeline (live search or fallback catalog) without persistence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			utils.InitLoggerTo(cmd.ErrOrStderr(), level, "console")
			color.NoColor = color.NoColor || opts.noColor || opts.jsonOut
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.rulesFile, "rules", "", "YAML rule tables overriding the defaults")
	root.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "print JSON")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newQueryCmd(opts))
	root.AddCommand(newSearchCmd(opts))
	return root
}

func (o *rootOptions) rules() (services.Rules, error) {
	if o.rulesFile == "" {
		return services.DefaultRules(), nil
	}
	return services.LoadRulesFromFile(o.rulesFile)
}

// newService wires the pipeline from the environment, without history or events.
func (o *rootOptions) newService() (*services.GiftSearchService, error) {
	rules, err := o.rules()
	if err != nil {
		return nil, err
	}
	cfg := config.Load()
	return services.NewGiftSearchService(cfg, services.NewCustomSearchService(cfg), services.WithRules(rules)), nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
