package config

import (
	"flag"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/flagx"
)

// parseFlags overlays command-line flags:
//
//	-a string    HTTP bind address (":8080")
//	-g string    gRPC health bind address (":50051")
//	-d string    PostgreSQL DSN
//	-s string    token signing key
//	-t duration  token validity ("24h")
//	-o string    comma-separated trusted CORS origins
//	-l string    log level
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-s", "-t", "-o", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC health address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing key")
	fs.DurationVar(&config.TokenValidityDuration, "t", config.TokenValidityDuration, "token validity duration")
	origins := fs.String("o", strings.Join(config.TrustedOrigins, ","), "trusted CORS origins, comma separated")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TrustedOrigins = splitList(*origins)
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
