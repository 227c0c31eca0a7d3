package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/birkland/servefs"
	"github.com/birkland/servefs/bundle"
	"github.com/birkland/servefs/bundle/s3bundle"
	ref "github.com/birkland/servefs/internal/resolv"
	"github.com/birkland/servefs/resolv"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

var mainOpts = struct {
	listen      string
	index       string
	envFile     string
	s3Endpoint  string
	s3PathStyle bool
}{}

// String flags bound to environment variables, which an env file may supply
var envBound = []struct {
	flag string
	env  string
	dest *string
}{
	{"listen", "SERVEFS_LISTEN", &mainOpts.listen},
	{"index", "SERVEFS_INDEX", &mainOpts.index},
	{"s3-endpoint", "SERVEFS_S3_ENDPOINT", &mainOpts.s3Endpoint},
}

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "servefs"
	app.Usage = "Static content serving utilities"
	app.EnableBashCompletion = true
	app.Commands = []cli.Command{
		serve,
		ls,
		cat,
	}
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "listen, l",
			Usage:       "Address to listen on",
			EnvVar:      "SERVEFS_LISTEN",
			Value:       "127.0.0.1:8080",
			Destination: &mainOpts.listen,
		},
		cli.StringFlag{
			Name:        "index, i",
			Usage:       "Index file served for directories of bundles (e.g. index.html)",
			EnvVar:      "SERVEFS_INDEX",
			Destination: &mainOpts.index,
		},
		cli.StringFlag{
			Name:        "env-file",
			Usage:       "Load environment variables from a .env file",
			Destination: &mainOpts.envFile,
		},
		cli.StringFlag{
			Name:        "s3-endpoint",
			Usage:       "Endpoint URL of an S3 compatible service",
			EnvVar:      "SERVEFS_S3_ENDPOINT",
			Destination: &mainOpts.s3Endpoint,
		},
		cli.BoolFlag{
			Name:        "s3-path-style",
			Usage:       "Use path style S3 addressing",
			Destination: &mainOpts.s3PathStyle,
		},
	}
	app.Before = func(c *cli.Context) error {
		if mainOpts.envFile == "" {
			return nil
		}
		return loadEnvFile(c, mainOpts.envFile)
	}

	return app
}

// Flags have already been parsed by the time an env file can be loaded, so
// values it provides are copied into any flag not given explicitly.
func loadEnvFile(c *cli.Context, path string) error {
	explicit := make(map[string]bool, len(envBound))
	for _, b := range envBound {
		explicit[b.flag] = c.IsSet(b.flag)
	}

	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "could not load env file %s", path)
	}

	for _, b := range envBound {
		if explicit[b.flag] {
			continue
		}
		if v, ok := os.LookupEnv(b.env); ok {
			*b.dest = v
		}
	}

	return nil
}

func open(ctx context.Context, loc ref.Location) (servefs.Resolver, error) {
	cfg := resolv.Config{
		Kind:      loc.Kind,
		Location:  loc.Path,
		IndexFile: mainOpts.index,
	}

	if loc.Kind == resolv.S3 {
		client, err := s3Client(ctx)
		if err != nil {
			return nil, err
		}
		cfg.S3 = client
	}

	return resolv.Open(ctx, cfg)
}

func loadTree(ctx context.Context, loc ref.Location) (*bundle.Dir, error) {
	switch loc.Kind {
	case resolv.Dir, resolv.Bundle:
		return bundle.Load(loc.Path)
	case resolv.S3:
		client, err := s3Client(ctx)
		if err != nil {
			return nil, err
		}
		bucket, prefix, err := resolv.SplitBucket(loc.Path)
		if err != nil {
			return nil, err
		}
		return s3bundle.Load(ctx, client, bucket, prefix)
	default:
		return nil, errors.Errorf("cannot list a location of kind %s", loc.Kind)
	}
}

func s3Client(ctx context.Context) (*s3.Client, error) {
	awsConfig, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load AWS config")
	}

	return s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if mainOpts.s3Endpoint != "" {
			o.BaseEndpoint = aws.String(mainOpts.s3Endpoint)
		}
		o.UsePathStyle = mainOpts.s3PathStyle
	}), nil
}
