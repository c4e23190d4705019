package envtb

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/leohubert/go-omdb/pkg/logtb"
)

func LoadEnvFile(filePaths ...string) {
	_ = godotenv.Load(filePaths...)
}

func GetString(key string, defaultValue string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultValue
}

// MustGetString panics when key is unset or empty.
func MustGetString(key string) string {
	str := GetString(key, "")
	if str == "" {
		panic(fmt.Errorf("%s is required", key))
	}
	return str
}

func GetEnum(key string, allowedValues []string, defaultValue string) string {
	str := GetString(key, defaultValue)
	for _, v := range allowedValues {
		if str == v {
			return str
		}
	}
	panic(fmt.Errorf("invalid value %q for key %s valid values are %q", str, key, allowedValues))
}

func GetBool(key string, defaultValue bool) bool {
	str := GetEnum(key, []string{"true", "false"}, strconv.FormatBool(defaultValue))
	return str == "true"
}

func GetInt(key string, defaultValue int64) int64 {
	defaultValueStr := strconv.FormatInt(defaultValue, 10)
	str := GetString(key, defaultValueStr)
	v, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		panic(fmt.Errorf("cannot parse int %s: %w", key, err))
	}
	return v
}

func GetDuration(key string, defaultDuration string) time.Duration {
	str := GetString(key, defaultDuration)
	res, err := time.ParseDuration(str)
	if err != nil {
		panic(fmt.Errorf("cannot parse duration %s: %w", str, err))
	}
	return res
}

func GetUrl(key string, defaultUrl string) *url.URL {
	str := GetString(key, defaultUrl)
	if str == "" {
		panic(fmt.Errorf("url %s cannot be empty", key))
	}

	res, err := url.Parse(str)
	if err != nil {
		panic(fmt.Errorf("cannot parse url %s: %w", str, err))
	}
	return res
}

func GetLogFormat(key string, defaultFormat logtb.Format) logtb.Format {
	str := GetEnum(key, []string{string(logtb.FormatPretty), string(logtb.FormatJSON)}, string(defaultFormat))
	return logtb.Format(str)
}

func GetLogLevel(key string, defaultLevel logtb.Level) logtb.Level {
	str := GetEnum(key, []string{
		string(logtb.LevelDebug),
		string(logtb.LevelInfo),
		string(logtb.LevelWarn),
		string(logtb.LevelError),
	}, string(defaultLevel))
	return logtb.Level(str)
}
