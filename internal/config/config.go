package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"3000"`

	DBType     string `env:"DB_TYPE" envDefault:"sqlite"`
	DSNURL     string `env:"DSN_URL" envDefault:""`
	DBUser     string `env:"DB_USERNAME" envDefault:""`
	DBPassword string `env:"DB_PASSWORD" envDefault:""`
	DBAddr     string `env:"DB_HOST" envDefault:"mysql"`
	DBName     string `env:"DB_DATABASE" envDefault:"micromon"`
	DBPath     string `env:"DB_PATH" envDefault:"datas/micromon.db"`
	DBPort     string `env:"DB_PORT" envDefault:"3306"`

	JWTSecret            string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTIssuer            string `env:"JWT_ISSUER" envDefault:"micromon"`
	JWTExpirationMinutes int    `env:"JWT_EXPIRATION_MINUTES" envDefault:"1440"`

	// Bootstrap accounts inserted on first start when the user table is empty.
	AdminUsername    string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword    string `env:"ADMIN_PASSWORD" envDefault:"admin123"`
	AdminEmail       string `env:"ADMIN_EMAIL" envDefault:"admin@localhost"`
	OperatorUsername string `env:"USER_USERNAME" envDefault:"operator"`
	OperatorPassword string `env:"USER_PASSWORD" envDefault:"operator123"`
	OperatorEmail    string `env:"USER_EMAIL" envDefault:"operator@localhost"`

	// Archive target for backup manifests.
	ArchiveType     string `env:"ARCHIVE_TYPE" envDefault:"local"`
	ArchiveLocalDir string `env:"ARCHIVE_LOCAL_DIR" envDefault:"datas/archive"`

	ArchiveS3Region          string `env:"ARCHIVE_S3_REGION"`
	ArchiveS3Bucket          string `env:"ARCHIVE_S3_BUCKET"`
	ArchiveS3Prefix          string `env:"ARCHIVE_S3_PREFIX"`
	ArchiveS3Endpoint        string `env:"ARCHIVE_S3_ENDPOINT"`
	ArchiveS3AccessKeyID     string `env:"ARCHIVE_S3_ACCESS_KEY_ID"`
	ArchiveS3SecretAccessKey string `env:"ARCHIVE_S3_SECRET_ACCESS_KEY"`
	ArchiveS3SessionToken    string `env:"ARCHIVE_S3_SESSION_TOKEN"`
	ArchiveS3ForcePathStyle  bool   `env:"ARCHIVE_S3_FORCE_PATH_STYLE" envDefault:"false"`

	ArchiveOSSEndpoint        string `env:"ARCHIVE_OSS_ENDPOINT"`
	ArchiveOSSBucket          string `env:"ARCHIVE_OSS_BUCKET"`
	ArchiveOSSPrefix          string `env:"ARCHIVE_OSS_PREFIX"`
	ArchiveOSSAccessKeyID     string `env:"ARCHIVE_OSS_ACCESS_KEY_ID"`
	ArchiveOSSAccessKeySecret string `env:"ARCHIVE_OSS_ACCESS_KEY_SECRET"`

	ArchiveCOSBucketURL string `env:"ARCHIVE_COS_BUCKET_URL"`
	ArchiveCOSPrefix    string `env:"ARCHIVE_COS_PREFIX"`
	ArchiveCOSSecretID  string `env:"ARCHIVE_COS_SECRET_ID"`
	ArchiveCOSSecretKey string `env:"ARCHIVE_COS_SECRET_KEY"`

	// SMTP relay used for notification test delivery on the email channel.
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`
}

func ParseConfig() (Config, error) {
	var Conf Config
	err := env.Parse(&Conf)
	if err != nil {
		logrus.WithError(err).Error("env.Parse error")
		return Config{}, err
	}
	logrus.Debugf("%#v\n", Conf)
	return Conf, nil
}
