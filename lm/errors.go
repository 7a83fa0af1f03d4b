package lm

import "errors"

var errUserPhrasesUnsupported = errors.New("lm: user overlay does not support AddUserPhrase")
