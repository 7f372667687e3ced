/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Sat Oct 10 10:02:11 2026 mstenber
 * Last modified: Tue Oct 13 18:22:50 2026 mstenber
 * Edit time:     6 min
 *
 */

package util

import "sync"

// MutexLocked is sync.Mutex with convenience feature of
// 'defer x.Locked()()'.
type MutexLocked sync.Mutex

func (self *MutexLocked) Lock() {
	(*sync.Mutex)(self).Lock()
}

func (self *MutexLocked) Unlock() {
	(*sync.Mutex)(self).Unlock()
}

func (self *MutexLocked) Locked() (unlock func()) {
	mut := (*sync.Mutex)(self)
	mut.Lock()
	return mut.Unlock
}
