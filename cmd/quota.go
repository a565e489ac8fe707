package cmd

import (
	"github.com/spf13/viper"

	"gamescout/internal/quota"
)

// QuotaCmd represents the quota command
type QuotaCmd struct{}

// Run loads the quota ledger and logs the usage summary. Loading alone is
// enough to roll the period over if the reset time has passed.
func (q *QuotaCmd) Run() error {
	ledger := quota.NewLedger(viper.GetString("quota.file"), viper.GetInt("quota.monthly_limit"))

	rec, err := ledger.Load()
	if err != nil {
		return err
	}

	ledger.LogUsage(rec)
	return nil
}
