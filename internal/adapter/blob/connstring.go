package blob

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Options is a parsed storage connection string:
//
//	s3://[ACCESS_KEY:SECRET_KEY@][host[:port]]/bucket?region=R[&path_style=true][&public_url=URL][&tls=false]
//
// An empty host targets AWS itself and uses the default credentials chain
// unless keys are given.
type Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PathStyle bool
	PublicURL string
}

// ParseConnString parses a storage connection string.
// Errors never include the secret key.
func ParseConnString(raw string) (Options, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Options{}, fmt.Errorf("blob: malformed connection string")
	}
	if u.Scheme != "s3" {
		return Options{}, fmt.Errorf("blob: unsupported scheme %q", u.Scheme)
	}

	opts := Options{
		Bucket: strings.Trim(u.Path, "/"),
	}
	if opts.Bucket == "" || strings.Contains(opts.Bucket, "/") {
		return Options{}, fmt.Errorf("blob: connection string must name exactly one bucket")
	}

	if u.User != nil {
		opts.AccessKey = u.User.Username()
		opts.SecretKey, _ = u.User.Password()
		if opts.AccessKey == "" || opts.SecretKey == "" {
			return Options{}, fmt.Errorf("blob: access key and secret key must both be set")
		}
	}

	q := u.Query()
	opts.Region = q.Get("region")
	if opts.Region == "" {
		opts.Region = "us-east-1"
	}

	if v := q.Get("path_style"); v != "" {
		opts.PathStyle, err = strconv.ParseBool(v)
		if err != nil {
			return Options{}, fmt.Errorf("blob: path_style: %w", err)
		}
	}

	if u.Host != "" {
		scheme := "https"
		if v := q.Get("tls"); v != "" {
			useTLS, err := strconv.ParseBool(v)
			if err != nil {
				return Options{}, fmt.Errorf("blob: tls: %w", err)
			}
			if !useTLS {
				scheme = "http"
			}
		}
		opts.Endpoint = scheme + "://" + u.Host
	}

	if v := q.Get("public_url"); v != "" {
		if _, err := url.ParseRequestURI(v); err != nil {
			return Options{}, fmt.Errorf("blob: public_url: %w", err)
		}
		opts.PublicURL = strings.TrimRight(v, "/")
	}

	return opts, nil
}

// ObjectURL returns the address under which key is reachable.
func (o Options) ObjectURL(key string) string {
	switch {
	case o.PublicURL != "":
		return o.PublicURL + "/" + key
	case o.Endpoint != "" && o.PathStyle:
		return o.Endpoint + "/" + o.Bucket + "/" + key
	case o.Endpoint != "":
		scheme, host, _ := strings.Cut(o.Endpoint, "://")
		return scheme + "://" + o.Bucket + "." + host + "/" + key
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", o.Bucket, o.Region, key)
	}
}
