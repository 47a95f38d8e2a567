package store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/whitekid/goxp/log"

	"devcert/issuer/types"
	"devcert/pkg/helper"
)

const (
	certFileMode = 0644
	keyFileMode  = 0600
)

type fileStoreImpl struct {
	dir string
}

var _ Interface = (*fileStoreImpl)(nil)

// File store to dir as <name>.pem, <name>.key
// if dir is "-", write both to stdout
func File(dir string) Interface {
	return &fileStoreImpl{dir: dir}
}

func (f *fileStoreImpl) Save(ctx context.Context, name string, certPEM, keyPEM []byte) (*types.Files, error) {
	log.Debugf("Save(): dir=%s, name=%s", f.dir, name)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files := &types.Files{CertFile: "-", KeyFile: "-"}
	if f.dir != "-" {
		if f.dir != "" {
			if err := os.MkdirAll(f.dir, 0755); err != nil {
				return nil, errors.Wrapf(err, "fail to create directory: %s", f.dir)
			}
		}

		files.CertFile = filepath.Join(f.dir, name+".pem")
		files.KeyFile = filepath.Join(f.dir, name+".key")
	}

	if err := helper.WriteFile(files.CertFile, certPEM, certFileMode); err != nil {
		return nil, errors.Wrapf(err, "fail to write certificate: %s", files.CertFile)
	}

	if err := helper.WriteFile(files.KeyFile, keyPEM, keyFileMode); err != nil {
		return nil, errors.Wrapf(err, "fail to write private key: %s", files.KeyFile)
	}

	return files, nil
}
