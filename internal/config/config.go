package config

import (
	"crypto/rsa"
	"encoding/base64"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/mansionmuse/backend/internal/utils"
)

const (
	OrganizationName    = "MansionMuse"
	LDConnectionTimeout = 5 * time.Second
)

type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	DBUrl            string

	SendgridAPIKey    string
	RazorpayKeyID     string
	RazorpayKeySecret string

	RSAPrivateKey  *rsa.PrivateKey
	RSAPublicKey   *rsa.PublicKey
	AccessTokenTTL time.Duration

	RentCronSpec   string
	SalaryCronSpec string

	LDFlag_SendgridFromEmail   string
	LDFlag_SendgridSandboxMode bool
	LDFlag_CORSHighSecurity    bool
	LDFlag_SeedDefaultData     bool
}

// LoadConfig reads .env (if present), required env vars and LaunchDarkly
// flags. Missing required values are fatal; LD is optional and falls back to
// env-derived defaults when LD_SDK_KEY is unset.
func LoadConfig(appName string) *Config {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file found, using process env")
	}

	utils.Logger.Info("Loading config for app: ", appName)

	appPort := mustEnv("APP_PORT")
	dbURL := mustEnv("DB_URL")
	sendgridAPIKey := mustEnv("SENDGRID_API_KEY")
	razorpayKeyID := mustEnv("RAZORPAY_KEY_ID")
	razorpayKeySecret := mustEnv("RAZORPAY_KEY_SECRET")

	privPEM, err := base64.StdEncoding.DecodeString(mustEnv("RSA_PRIVATE_KEY_BASE64"))
	if err != nil {
		utils.Logger.WithError(err).Fatal("RSA_PRIVATE_KEY_BASE64 is not valid base64")
	}
	privKey, err := jwt.ParseRSAPrivateKeyFromPEM(privPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA private key")
	}

	pubPEM, err := base64.StdEncoding.DecodeString(mustEnv("RSA_PUBLIC_KEY_BASE64"))
	if err != nil {
		utils.Logger.WithError(err).Fatal("RSA_PUBLIC_KEY_BASE64 is not valid base64")
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	tokenTTL := 24 * time.Hour
	if raw := os.Getenv("ACCESS_TOKEN_TTL_HOURS"); raw != "" {
		hours, pErr := strconv.Atoi(raw)
		if pErr != nil || hours <= 0 {
			utils.Logger.Fatal("ACCESS_TOKEN_TTL_HOURS must be a positive integer")
		}
		tokenTTL = time.Duration(hours) * time.Hour
	}

	rentCronSpec := os.Getenv("RENT_CRON_SPEC")
	if rentCronSpec == "" {
		rentCronSpec = "0 2 1 * *" // 02:00 on the 1st
	}
	salaryCronSpec := os.Getenv("SALARY_CRON_SPEC")
	if salaryCronSpec == "" {
		salaryCronSpec = "0 2 25 * *" // 02:00 on the 25th
	}

	cfg := &Config{
		OrganizationName:  OrganizationName,
		AppName:           appName,
		AppPort:           appPort,
		DBUrl:             dbURL,
		SendgridAPIKey:    sendgridAPIKey,
		RazorpayKeyID:     razorpayKeyID,
		RazorpayKeySecret: razorpayKeySecret,
		RSAPrivateKey:     privKey,
		RSAPublicKey:      pubKey,
		AccessTokenTTL:    tokenTTL,
		RentCronSpec:      rentCronSpec,
		SalaryCronSpec:    salaryCronSpec,
	}

	loadFlags(cfg)
	return cfg
}

// loadFlags evaluates feature flags from LaunchDarkly when LD_SDK_KEY is
// configured, otherwise from env vars so local runs need no LD account.
func loadFlags(cfg *Config) {
	ldSDKKey := os.Getenv("LD_SDK_KEY")
	if ldSDKKey == "" {
		utils.Logger.Info("LD_SDK_KEY not set, using env fallbacks for feature flags")
		cfg.LDFlag_SendgridFromEmail = envOr("SENDGRID_FROM_EMAIL", "no-reply@mansionmuse.app")
		cfg.LDFlag_SendgridSandboxMode = envBool("SENDGRID_SANDBOX_MODE", true)
		cfg.LDFlag_CORSHighSecurity = envBool("CORS_HIGH_SECURITY", false)
		cfg.LDFlag_SeedDefaultData = envBool("SEED_DEFAULT_DATA", false)
		return
	}

	ldClient, err := ld.MakeClient(ldSDKKey, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	defer ldClient.Close()

	ctx := ldcontext.NewWithKind("service", cfg.AppName)

	sgFromFlag, err := ldClient.StringVariation("sendgrid_from_email", ctx, "")
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving sendgrid_from_email flag")
	}
	if sgFromFlag == "" {
		sgFromFlag = "no-reply@mansionmuse.app" // Fallback
	}

	sgSandboxFlag, err := ldClient.BoolVariation("sendgrid_sandbox_mode", ctx, false)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving sendgrid_sandbox_mode flag")
	}
	utils.Logger.Debugf("sendgrid_sandbox_mode flag: %t", sgSandboxFlag)

	corsHighSecurityFlag, err := ldClient.BoolVariation("cors_high_security", ctx, false)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving cors_high_security flag")
	}
	utils.Logger.Debugf("cors_high_security flag: %t", corsHighSecurityFlag)

	seedDefaultDataFlag, err := ldClient.BoolVariation("seed_default_data", ctx, false)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving seed_default_data flag")
	}
	utils.Logger.Debugf("seed_default_data flag: %t", seedDefaultDataFlag)

	cfg.LDFlag_SendgridFromEmail = sgFromFlag
	cfg.LDFlag_SendgridSandboxMode = sgSandboxFlag
	cfg.LDFlag_CORSHighSecurity = corsHighSecurityFlag
	cfg.LDFlag_SeedDefaultData = seedDefaultDataFlag
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		utils.Logger.Fatalf("%s env var is missing", key)
	}
	return v
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		utils.Logger.Fatalf("%s must be a boolean, got %q", key, v)
	}
	return b
}
