// server/config/config.go
package config

import (
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration string `mapstructure:"expiration"`
}

type S3Config struct {
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	AccessKeyID      string `mapstructure:"accessKeyID"`
	SecretAccessKey  string `mapstructure:"secretAccessKey"`
	CloudFrontDomain string `mapstructure:"cloudFrontDomain"`
}

// TwilioConfig holds the WhatsApp sender credentials. When AccountSID or
// AuthToken is empty the sender runs in simulation mode and only logs.
type TwilioConfig struct {
	AccountSID     string `mapstructure:"accountSID"`
	AuthToken      string `mapstructure:"authToken"`
	WhatsAppNumber string `mapstructure:"whatsappNumber"`
}

type DeliveryConfig struct {
	// AllowUnpaidAssignments permits assigning a delivery for an order that
	// has not been paid yet. Demo escape hatch, off by default.
	AllowUnpaidAssignments bool `mapstructure:"allowUnpaidAssignments"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	S3       S3Config       `mapstructure:"s3"`
	Twilio   TwilioConfig   `mapstructure:"twilio"`
	Delivery DeliveryConfig `mapstructure:"delivery"`
}

// LoadConfig reads config.yaml from path and overrides values with
// environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.BindEnv("mongo.uri", "MONGO_URI")
	viper.BindEnv("mongo.dbName", "MONGO_DBNAME")
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	viper.BindEnv("s3.bucket", "S3_BUCKET")
	viper.BindEnv("s3.region", "S3_REGION")
	viper.BindEnv("s3.accessKeyID", "S3_ACCESS_KEY_ID")
	viper.BindEnv("s3.secretAccessKey", "S3_SECRET_ACCESS_KEY")
	viper.BindEnv("s3.cloudFrontDomain", "S3_CLOUDFRONT_DOMAIN")
	viper.BindEnv("twilio.accountSID", "TWILIO_ACCOUNT_SID")
	viper.BindEnv("twilio.authToken", "TWILIO_AUTH_TOKEN")
	viper.BindEnv("twilio.whatsappNumber", "TWILIO_WHATSAPP_NUMBER")
	viper.BindEnv("delivery.allowUnpaidAssignments", "ALLOW_UNPAID_ASSIGNMENTS")

	viper.SetDefault("server.port", "5000")
	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.dbName", "greenscape")
	viper.SetDefault("jwt.expiration", "24h")

	// If the file is missing, run on env vars and defaults alone.
	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return
}
