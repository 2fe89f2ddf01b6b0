package config

import (
	"os"
	"strconv"
)

// FromEnv loads balance configuration from environment variables.
// Falls back to defaults for variables that are not set.
func FromEnv() Balance {
	cfg := Default()

	if v := getEnvFloat("KBBQ_BOOST_MULTIPLIER"); v > 0 {
		cfg.BoostMultiplier = v
	}
	if v := getEnvFloat("KBBQ_BOOST_DURATION"); v > 0 {
		cfg.BoostDuration = v
	}
	if v := getEnvFloat("KBBQ_RUSH_MULTIPLIER"); v > 0 {
		cfg.RushMultiplier = v
	}
	if v := getEnvFloat("KBBQ_RUSH_DURATION"); v > 0 {
		cfg.RushDuration = v
	}
	if v := getEnvInt("KBBQ_MAX_OFFLINE_HOURS"); v >= 0 {
		cfg.MaxOfflineHours = v
	}
	if v := getEnvFloat("KBBQ_OFFLINE_RATE"); v > 0 {
		cfg.OfflineRate = v
	}
	if v := getEnvInt("KBBQ_MAX_QUEUE"); v > 0 {
		cfg.MaxQueue = v
	}
	if v := getEnvInt("KBBQ_GRILL_SLOTS"); v > 0 {
		cfg.GrillSlotCount = v
	}
	if v := getEnvFloat("KBBQ_COOK_SECONDS"); v > 0 {
		cfg.CookSeconds = v
	}
	if v := getEnvFloat("KBBQ_BURN_SECONDS"); v > 0 {
		cfg.BurnSeconds = v
	}
	if v := getEnvInt("KBBQ_MISSIONS_PER_DAY"); v > 0 {
		cfg.MissionsPerDay = v
	}

	cfg.Sanitize()
	return cfg
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return -1
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return -1
	}
	return n
}

func getEnvFloat(key string) float64 {
	val := os.Getenv(key)
	if val == "" {
		return -1
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return -1
	}
	return f
}
