package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/twentyq/pkg/adapter"
	"github.com/m-mizutani/twentyq/pkg/model"
	"github.com/m-mizutani/twentyq/pkg/utils/logging"
)

const gcsScheme = "gs://"

var (
	ErrEmptyFile = goerr.New("empty CSV file")
)

// IsRemote reports whether src points to a Cloud Storage object
func IsRemote(src string) bool {
	return strings.HasPrefix(src, gcsScheme)
}

// ParseURL splits gs://bucket/path/to/object into bucket and object
func ParseURL(src string) (bucket, object string, err error) {
	if !IsRemote(src) {
		return "", "", goerr.New("not a Cloud Storage URL", goerr.V("src", src))
	}
	bucket, object, found := strings.Cut(strings.TrimPrefix(src, gcsScheme), "/")
	if !found || bucket == "" || object == "" {
		return "", "", goerr.New("Cloud Storage URL must be gs://<bucket>/<object>", goerr.V("src", src))
	}
	return bucket, object, nil
}

// Load reads and validates a CSV dataset from a local path or a gs:// URL.
// storage is only used for gs:// sources and may be nil otherwise.
func Load(ctx context.Context, src string, storage adapter.Storage) (*model.Dataset, error) {
	if src == "" {
		return nil, goerr.New("dataset path is required")
	}

	var (
		r   io.ReadCloser
		err error
	)
	if IsRemote(src) {
		if storage == nil {
			return nil, goerr.New("storage client is required for remote dataset", goerr.V("src", src))
		}
		bucket, object, err := ParseURL(src)
		if err != nil {
			return nil, err
		}
		if r, err = storage.Open(ctx, bucket, object); err != nil {
			return nil, goerr.Wrap(err, "failed to open remote dataset", goerr.V("src", src))
		}
	} else {
		if r, err = os.Open(src); err != nil {
			return nil, goerr.Wrap(err, "failed to open dataset file", goerr.V("path", src))
		}
	}
	defer r.Close()

	ds, err := Parse(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load dataset", goerr.V("src", src))
	}

	logging.From(ctx).Debug("dataset loaded",
		"src", src,
		"identifier", ds.IdentifierKey,
		"records", len(ds.Records),
		"traits", len(ds.Traits),
	)
	return ds, nil
}

// Parse reads CSV whose first column is the identifier and whose other columns are 0/1 traits.
// Row numbers in errors count data rows from 1.
func Parse(r io.Reader) (*model.Dataset, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read CSV header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	ds := &model.Dataset{
		IdentifierKey: header[0],
		Traits:        header[1:],
	}

	for row := 1; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read CSV row", goerr.V("row", row))
		}

		record, err := parseRecord(fields, ds.Traits)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid row", goerr.V("row", row))
		}
		ds.Records = append(ds.Records, record)
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

func parseRecord(fields []string, traits []string) (*model.Record, error) {
	record := &model.Record{
		ID:     fields[0],
		Traits: make(map[string]int, len(traits)),
	}

	for i, trait := range traits {
		raw := strings.TrimSpace(fields[i+1])
		if raw == "" {
			return nil, goerr.New("missing value", goerr.V("trait", trait))
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, goerr.Wrap(err, "trait value is not an integer", goerr.V("trait", trait), goerr.V("value", raw))
		}
		if v != 0 && v != 1 {
			return nil, goerr.New("trait value must be 0 or 1", goerr.V("trait", trait), goerr.V("value", v))
		}
		record.Traits[trait] = v
	}

	return record, nil
}
