package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/kbukum/reqkit/errors"
	"github.com/kbukum/reqkit/fetch"
	"github.com/kbukum/reqkit/future"
	"github.com/kbukum/reqkit/hostfetch"
	"github.com/kbukum/reqkit/version"
)

const (
	asText = "text"
	asJSON = "json"
	asBlob = "blob"
)

func newGetCmd(opts *rootOptions) *cobra.Command {
	var (
		as          string
		credentials bool
	)
	cmd := &cobra.Command{
		Use:   "get URL",
		Short: "GET a URL through the standard transport",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := args[0]
			b, err := requestFor(as, url)
			if err != nil {
				return err
			}
			if credentials {
				b = fetch.WithCredentials(b)
			}
			return opts.run(cmd, components{fetch: true}, func(ctx context.Context, rt *runtime) error {
				v, err := rt.dispatcher().Send(ctx, b).Await(ctx)
				if err != nil {
					return err
				}
				if as == asJSON {
					if v, err = fetch.ToStructured(v); err != nil {
						return err
					}
				}
				return writeValue(cmd.OutOrStdout(), v)
			})
		},
	}
	cmd.Flags().StringVar(&as, "as", asJSON, "result shape: text, json or blob")
	cmd.Flags().BoolVar(&credentials, "credentials", false, "send cookies and configured auth")
	return cmd
}

func newPostCmd(opts *rootOptions) *cobra.Command {
	var (
		data        string
		file        string
		asJSONBody  bool
		credentials bool
	)
	cmd := &cobra.Command{
		Use:   "post URL",
		Short: "POST form text or a JSON value through the standard transport",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := args[0]
			return opts.run(cmd, components{fetch: true}, func(ctx context.Context, rt *runtime) error {
				body := data
				if cmd.Flags().Changed("file") {
					up, err := rt.files.UploadText(file)
					if err != nil {
						return err
					}
					body = up.Content
				}

				d := rt.dispatcher()
				if !asJSONBody {
					var f *future.Future[string]
					if credentials {
						f = d.PostTextWithCredentials(ctx, url, body)
					} else {
						f = d.PostText(ctx, url, body)
					}
					text, err := f.Await(ctx)
					if err != nil {
						return err
					}
					return writeValue(cmd.OutOrStdout(), text)
				}

				var value any
				if err := json.Unmarshal([]byte(body), &value); err != nil {
					return apperrors.Validation(fmt.Sprintf("request body is not JSON: %v", err))
				}
				var f *future.Future[any]
				if credentials {
					f = d.PostJSONWithCredentials(ctx, url, value)
				} else {
					f = d.PostJSON(ctx, url, value)
				}
				v, err := f.Await(ctx)
				if err != nil {
					return err
				}
				return writeValue(cmd.OutOrStdout(), v)
			})
		},
	}
	cmd.Flags().StringVarP(&data, "data", "d", "", "request body")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the request body from a file")
	cmd.Flags().BoolVar(&asJSONBody, "json", false, "send --data as a JSON value and parse the JSON response")
	cmd.Flags().BoolVar(&credentials, "credentials", false, "send cookies and configured auth")
	return cmd
}

func newHostCmd(opts *rootOptions) *cobra.Command {
	var (
		method       string
		headers      []string
		data         string
		responseType string
		cache        bool
	)
	cmd := &cobra.Command{
		Use:   "host URL",
		Short: "Send a request through the host transport",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := hostfetch.Spec{
				Method:       method,
				URL:          args[0],
				ResponseType: responseType,
			}
			if cmd.Flags().Changed("cache") {
				spec.NoCache = hostfetch.Bool(!cache)
			}
			if data != "" {
				spec.Data = []byte(data)
			}
			if len(headers) > 0 {
				spec.Headers = make(map[string]string, len(headers))
				for _, h := range headers {
					k, v, ok := strings.Cut(h, ":")
					if !ok {
						return apperrors.Validation(fmt.Sprintf("header %q must be Name: value", h))
					}
					spec.Headers[strings.TrimSpace(k)] = strings.TrimSpace(v)
				}
			}

			return opts.run(cmd, components{host: true}, func(ctx context.Context, rt *runtime) error {
				v, err := rt.adapter().Request(ctx, spec).Await(ctx)
				if err != nil {
					return err
				}
				return writeValue(cmd.OutOrStdout(), v)
			})
		},
	}
	cmd.Flags().StringVarP(&method, "method", "X", "", "request method (default GET)")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "request header as 'Name: value', repeatable")
	cmd.Flags().StringVarP(&data, "data", "d", "", "request body")
	cmd.Flags().StringVar(&responseType, "type", hostfetch.ResponseText, "response type: text, json, blob or arraybuffer")
	cmd.Flags().BoolVar(&cache, "cache", false, "allow cached responses")
	return cmd
}

func newDownloadCmd(opts *rootOptions) *cobra.Command {
	var credentials bool
	cmd := &cobra.Command{
		Use:   "download URL FILE",
		Short: "GET a JSON document and save it to FILE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, file := args[0], args[1]
			return opts.run(cmd, components{fetch: true}, func(ctx context.Context, rt *runtime) error {
				d := rt.dispatcher()
				var f *future.Future[any]
				if credentials {
					f = d.GetJSONWithCredentials(ctx, url)
				} else {
					f = d.GetJSON(ctx, url)
				}
				v, err := f.Await(ctx)
				if err != nil {
					return err
				}
				if err := rt.files.Download(v, file); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", file)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&credentials, "credentials", false, "send cookies and configured auth")
	return cmd
}

// requestFor picks the builder for a --as value.
func requestFor(as, url string) (fetch.Builder, error) {
	switch as {
	case asText:
		return fetch.TextRequest(url), nil
	case asJSON:
		return fetch.JSONRequest(url), nil
	case asBlob:
		return fetch.BlobRequest(url), nil
	default:
		return nil, apperrors.Validation(fmt.Sprintf("--as must be one of text, json, blob (got %q)", as))
	}
}

// writeValue prints strings as-is, bytes raw and anything else as indented
// JSON.
func writeValue(w io.Writer, v any) error {
	switch x := v.(type) {
	case string:
		_, err := io.WriteString(w, x)
		return err
	case []byte:
		_, err := w.Write(x)
		return err
	default:
		data, err := json.MarshalIndent(x, "", "  ")
		if err != nil {
			return apperrors.EncodeFailure(err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the reqkit version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "reqkit "+version.Get().String())
			return err
		},
	}
}
