//go:build !darwin || ios

package browsercookie

import "context"

func (r *safariReader) Read(_ context.Context, _ string, _ Options) ([]Cookie, []string, error) {
	return nil, []string{"Safari supported on macOS only"}, nil
}
