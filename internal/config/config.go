package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBType     string `env:"DBType" envDefault:"sqlite"`
	DSNURL     string `env:"DSN_URL" envDefault:""`
	DBUser     string `env:"DBUser" envDefault:""`
	DBPassword string `env:"DBPassword" envDefault:""`
	DBAddr     string `env:"DBAddr" envDefault:""`
	DBName     string `env:"DBName" envDefault:"userhub"`
	DBPath     string `env:"DBPath" envDefault:"datas/userhub.db"`
	DBPort     string `env:"DBPort" envDefault:"5432"`

	JWTSecret            string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTIssuer            string `env:"JWT_ISSUER" envDefault:"userhub"`
	JWTExpirationMinutes int    `env:"JWT_EXPIRATION_MINUTES" envDefault:"60"`

	// Seed admin account, skipped when SEED_ADMIN_PASSWORD is empty.
	SeedAdminFullName string `env:"SEED_ADMIN_FULL_NAME" envDefault:"Admin User"`
	SeedAdminUserName string `env:"SEED_ADMIN_USER_NAME" envDefault:"admin"`
	SeedAdminEmail    string `env:"SEED_ADMIN_EMAIL" envDefault:""`
	SeedAdminPassword string `env:"SEED_ADMIN_PASSWORD" envDefault:""`
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
