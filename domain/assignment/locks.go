package assignment

import (
	"sync"

	"github.com/fundwit/go-commons/types"
)

// Capacity checks and the writes that depend on them are check-then-act pairs;
// writers for the same member must be serialized or two concurrent
// confirmations could both pass the check and over-commit the member.
var memberLocks sync.Map

func lockMember(memberID types.ID) func() {
	value, _ := memberLocks.LoadOrStore(memberID, &sync.Mutex{})
	mutex := value.(*sync.Mutex)
	mutex.Lock()
	return mutex.Unlock
}
