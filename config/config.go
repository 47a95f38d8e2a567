package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/whitekid/goxp/log"

	"devcert/issuer/provider"
)

// configuration keys; environment variables are DEVCERT_<KEY>
const (
	KeyDir    = "dir"    // output directory of <name>.pem and <name>.key
	KeyDB     = "db"     // ledger database url, empty to disable ledger
	KeyDigest = "digest" // signature digest
	KeyBits   = "bits"   // RSA key size
	KeyAddr   = "addr"   // listen address of serve command
	KeyCert   = "cert"   // TLS certificate of serve command
	KeyKey    = "key"    // TLS private key of serve command
)

const (
	EnvPrefix  = "DEVCERT"
	ConfigName = "devcert"
)

func init() {
	viper.SetDefault(KeyDir, "")
	viper.SetDefault(KeyDB, "")
	viper.SetDefault(KeyDigest, "sha1")
	viper.SetDefault(KeyBits, provider.DefaultKeyBits)
	viper.SetDefault(KeyAddr, "127.0.0.1:8443")
}

// Init load .env files, environment and devcert.yaml in working directory
// missing files are ignored
func Init(envFiles ...string) {
	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}

		if err := godotenv.Load(envFile); err != nil {
			log.Errorf("fail to load %s: %+v", envFile, err)
		}
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	viper.SetConfigName(ConfigName)
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Errorf("fail to read config: %+v", err)
		}
	}
}

func Dir() string    { return viper.GetString(KeyDir) }
func DBURL() string  { return viper.GetString(KeyDB) }
func Digest() string { return viper.GetString(KeyDigest) }
func Bits() int      { return viper.GetInt(KeyBits) }
func Addr() string   { return viper.GetString(KeyAddr) }
func Cert() string   { return viper.GetString(KeyCert) }
func Key() string    { return viper.GetString(KeyKey) }
