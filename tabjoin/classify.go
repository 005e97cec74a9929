package tabjoin

import (
	"errors"
	"strconv"

	"github.com/grailbio/tabmerge/dedup"
)

func isPreconditionErr(err error) bool {
	return errors.Is(err, dedup.ErrPrecondition)
}

func isParseErr(err error) bool {
	var numErr *strconv.NumError
	return errors.As(err, &numErr)
}
