/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Sat Oct 10 10:14:20 2026 mstenber
 * Last modified: Sat Oct 10 10:15:51 2026 mstenber
 * Edit time:     1 min
 *
 */

package util

import (
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/fingon/go-bookshelf/mlog"
)

// GetSeededRng returns a rng seeded from SEED environment variable,
// or current time if it is not set. The seed is logged so that
// failing randomized tests can be reproduced.
func GetSeededRng() *rand.Rand {
	seedvalue := time.Now().UnixNano()
	if seed := os.Getenv("SEED"); seed != "" {
		v, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			log.Panic(err)
		}
		seedvalue = v
	}
	log.Printf("Seed: %v (use SEED= to fix)", seedvalue)
	mlog.Printf2("util/random", "GetSeededRng %v", seedvalue)
	return rand.New(rand.NewSource(seedvalue))
}
