package container

import (
	"github.com/serroba/portal-api/internal/ratelimit"
)

// Options configures the portal API. Every flag can also be set through the
// environment as SERVICE_<FLAG>, and a local .env file is loaded first.
type Options struct {
	Port        int    `default:"8888"  help:"Port to listen on"                                        short:"p"`
	RedisAddr   string `default:""      help:"Redis server address; empty keeps counters in process"    short:"r"`
	PostgresURL string `default:""      help:"PostgreSQL URL for the site index; empty uses the catalog"`
	LogFormat   string `default:"json"  help:"Log format: json or console"`

	ClientIPHeader string `default:"CF-Connecting-IP" help:"Trusted proxy header carrying the client IP"`

	SearchLimit   int `default:"60"  help:"Search requests allowed per window per client"`
	SearchWindow  int `default:"60"  help:"Search window length in seconds"`
	GeneralLimit  int `default:"100" help:"Requests allowed per window per client on other endpoints"`
	GeneralWindow int `default:"60"  help:"General window length in seconds"`

	SearchCacheSeconds int    `default:"30"               help:"Redis search cache TTL in seconds; 0 disables the cache"`
	ConsumerGroup      string `default:"portal-analytics" help:"Redis stream consumer group for analytics"`
}

// Policies builds the named rate limit policies from the options.
// Invalid limits or windows are reported here, before the server starts.
func (o *Options) Policies() (*ratelimit.Policies, error) {
	return ratelimit.NewPolicyBuilder().
		Add(ratelimit.PolicySearch, ratelimit.Config{
			Limit:         o.SearchLimit,
			WindowSeconds: o.SearchWindow,
			Identifier:    ratelimit.DefaultSearch.Identifier,
		}).
		Add(ratelimit.PolicyGeneral, ratelimit.Config{
			Limit:         o.GeneralLimit,
			WindowSeconds: o.GeneralWindow,
			Identifier:    ratelimit.DefaultGeneral.Identifier,
		}).
		Default(ratelimit.PolicyGeneral).
		Build()
}
