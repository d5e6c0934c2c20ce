package main

import (
	"errors"
	"fmt"

	"github.com/dao-xyz/bufcodec/internal/logger"
	"github.com/dao-xyz/bufcodec/region"
)

// openRegion maps path for reading or writing.
func openRegion(path string, writable bool) (*region.Region, error) {
	printVerbose("Opening region: %s\n", path)
	r, err := region.Open(path, region.Options{Writable: writable})
	if err != nil {
		return nil, err
	}
	logger.Debug("region opened", "path", path, "len", r.Len(), "writable", writable)
	return r, nil
}

// closeRegion closes r and folds any close error into err.
func closeRegion(r *region.Region, err *error) {
	if cerr := r.Close(); cerr != nil {
		*err = errors.Join(*err, fmt.Errorf("failed to close region: %w", cerr))
	}
}

// declaredLen resolves the --data-len flag; negative means the whole file.
func declaredLen(r *region.Region, flag int) int {
	if flag < 0 {
		return r.Len()
	}
	return flag
}
