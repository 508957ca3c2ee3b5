// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/H0llyW00dzZ/netting/src/netting"
)

// Configuration keys. Each key doubles as a NETTING_<KEY> environment
// variable.
const (
	keyConnectivityTimeout = "connectivity_timeout"
	keyDNSTimeout          = "dns_timeout"
	keyDNSAttempts         = "dns_attempts"
	keyCertificateTimeout  = "certificate_timeout"
	keyNameservers         = "nameservers"
	keyResolvConf          = "resolv_conf"
	keyTLSPort             = "tls_port"
	keyOutput              = "output"
)

const (
	envPrefix         = "NETTING"
	defaultConfigName = ".netting"
)

// Config is the runtime configuration of the command line tool.
type Config struct {
	ConnectivityTimeout time.Duration `mapstructure:"connectivity_timeout"`
	DNSTimeout          time.Duration `mapstructure:"dns_timeout"`
	DNSAttempts         int           `mapstructure:"dns_attempts"`
	CertificateTimeout  time.Duration `mapstructure:"certificate_timeout"`
	Nameservers         []string      `mapstructure:"nameservers"`
	ResolvConf          string        `mapstructure:"resolv_conf"`
	TLSPort             string        `mapstructure:"tls_port"`
	Output              string        `mapstructure:"output"`
}

// defaultConfig mirrors the defaults of netting.New.
func defaultConfig() Config {
	return Config{
		ConnectivityTimeout: 10 * time.Second,
		DNSTimeout:          5 * time.Second,
		DNSAttempts:         2,
		ResolvConf:          "/etc/resolv.conf",
		TLSPort:             "443",
		Output:              "text",
	}
}

// registerFlags adds the configuration flags to fs.
func registerFlags(fs *pflag.FlagSet) {
	d := defaultConfig()

	fs.Duration("connectivity-timeout", d.ConnectivityTimeout, "HTTPS probe timeout")
	fs.Duration("dns-timeout", d.DNSTimeout, "timeout per DNS attempt")
	fs.Int("dns-attempts", d.DNSAttempts, "attempts per DNS query")
	fs.Duration("certificate-timeout", d.CertificateTimeout, "certificate inspection timeout (0 = none)")
	fs.StringSlice("nameservers", nil, "nameservers to query instead of the system resolver")
	fs.String("resolv-conf", d.ResolvConf, "resolver configuration file")
	fs.String("tls-port", d.TLSPort, "port dialed for certificate inspection")
	fs.StringP("output", "o", d.Output, "output format: text, json or yaml")
}

var flagKeys = map[string]string{
	"connectivity-timeout": keyConnectivityTimeout,
	"dns-timeout":          keyDNSTimeout,
	"dns-attempts":         keyDNSAttempts,
	"certificate-timeout":  keyCertificateTimeout,
	"nameservers":          keyNameservers,
	"resolv-conf":          keyResolvConf,
	"tls-port":             keyTLSPort,
	"output":               keyOutput,
}

// loadConfig resolves the configuration. Precedence, highest first:
// explicitly set flags, NETTING_* environment variables, the config
// file, built-in defaults.
//
// An explicit path must exist. Without one, .netting.yaml is looked up
// in the working directory and then in $HOME; finding none is fine.
func loadConfig(v *viper.Viper, path string, fs *pflag.FlagSet) (Config, error) {
	d := defaultConfig()
	v.SetDefault(keyConnectivityTimeout, d.ConnectivityTimeout)
	v.SetDefault(keyDNSTimeout, d.DNSTimeout)
	v.SetDefault(keyDNSAttempts, d.DNSAttempts)
	v.SetDefault(keyCertificateTimeout, d.CertificateTimeout)
	v.SetDefault(keyNameservers, []string{})
	v.SetDefault(keyResolvConf, d.ResolvConf)
	v.SetDefault(keyTLSPort, d.TLSPort)
	v.SetDefault(keyOutput, d.Output)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
		}
	}

	// Only flags the user actually set may override lower layers.
	if fs != nil {
		var bindErr error
		fs.Visit(func(f *pflag.Flag) {
			if key, ok := flagKeys[f.Name]; ok && bindErr == nil {
				bindErr = v.BindPFlag(key, f)
			}
		})
		if bindErr != nil {
			return Config{}, fmt.Errorf("%w: %v", ErrConfig, bindErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	return cfg, nil
}

// options translates cfg into netting options.
func (cfg Config) options(logger *zap.Logger) []netting.Option {
	opts := []netting.Option{
		netting.WithConnectivityTimeout(cfg.ConnectivityTimeout),
		netting.WithDNSTimeout(cfg.DNSTimeout),
		netting.WithDNSAttempts(cfg.DNSAttempts),
		netting.WithCertificateTimeout(cfg.CertificateTimeout),
		netting.WithResolvConf(cfg.ResolvConf),
		netting.WithTLSPort(cfg.TLSPort),
		netting.WithLogger(logger),
	}
	if len(cfg.Nameservers) > 0 {
		opts = append(opts, netting.WithNameservers(cfg.Nameservers...))
	}
	return opts
}
