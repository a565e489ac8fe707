package cmd

import (
	"os"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func resetCmdState(t *testing.T) {
	t.Cleanup(func() {
		viper.Reset()
	})
	viper.Reset()
}

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	originalArgs := os.Args
	os.Args = append([]string{"gamescout"}, args...)
	t.Cleanup(func() { os.Args = originalArgs })

	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("gamescout"),
		kong.UsageOnError(),
		kong.Exit(func(code int) {
			t.Fatalf("unexpected Kong exit %d", code)
		}),
	)

	return cli, ctx
}

func TestUpdateGlobalConfig(t *testing.T) {
	resetCmdState(t)

	cli := &CLI{
		ListenAddr:  ":9000",
		CacheDBFile: "/tmp/cache.db",
		QuotaFile:   "/tmp/quota.json",
		QuotaLimit:  500,
	}

	updateGlobalConfig(cli)

	assert.Equal(t, ":9000", viper.GetString("listen_addr"))
	assert.Equal(t, "/tmp/cache.db", viper.GetString("cache.dbfile"))
	assert.Equal(t, "/tmp/quota.json", viper.GetString("quota.file"))
	assert.Equal(t, 500, viper.GetInt("quota.monthly_limit"))
}

func TestServeIsDefaultCommand(t *testing.T) {
	resetCmdState(t)

	_, ctx := parseCLI(t)
	assert.Equal(t, "serve", ctx.Command())
}

func TestGlobalFlagParsing(t *testing.T) {
	resetCmdState(t)

	cli, ctx := parseCLI(t, "--listen-addr", ":9090", "--quota-limit", "1000", "serve")
	assert.Equal(t, "serve", ctx.Command())
	assert.Equal(t, ":9090", cli.ListenAddr)
	assert.Equal(t, 1000, cli.QuotaLimit)
}

func TestCacheInvalidateParsing(t *testing.T) {
	resetCmdState(t)

	cli, ctx := parseCLI(t, "cache", "invalidate", "rawg-search")
	assert.Equal(t, "cache invalidate <source>", ctx.Command())
	assert.Equal(t, "rawg-search", cli.Cache.Invalidate.Source)
}

func TestQuotaCommandParsing(t *testing.T) {
	resetCmdState(t)

	_, ctx := parseCLI(t, "quota")
	assert.Equal(t, "quota", ctx.Command())
}
