package spinel

import "fmt"

var statusNames = map[uint32]string{
	0:   "OK",
	1:   "FAILURE",
	2:   "UNIMPLEMENTED",
	3:   "INVALID_ARGUMENT",
	4:   "INVALID_STATE",
	5:   "INVALID_COMMAND",
	6:   "INVALID_INTERFACE",
	7:   "INTERNAL_ERROR",
	8:   "SECURITY_ERROR",
	9:   "PARSE_ERROR",
	10:  "IN_PROGRESS",
	11:  "NOMEM",
	12:  "BUSY",
	13:  "PROP_NOT_FOUND",
	14:  "DROPPED",
	15:  "EMPTY",
	16:  "CMD_TOO_BIG",
	17:  "NO_ACK",
	18:  "CCA_FAILURE",
	19:  "ALREADY",
	20:  "ITEM_NOT_FOUND",
	21:  "INVALID_COMMAND_FOR_PROP",
	104: "JOIN_FAILURE",
	105: "JOIN_SECURITY",
	106: "JOIN_NO_PEERS",
	107: "JOIN_INCOMPATIBLE",
	108: "JOIN_RSP_TIMEOUT",
	109: "JOIN_SUCCESS",
	112: "RESET_POWER_ON",
	113: "RESET_EXTERNAL",
	114: "RESET_SOFTWARE",
	115: "RESET_FAULT",
	116: "RESET_CRASH",
	117: "RESET_ASSERT",
	118: "RESET_OTHER",
	119: "RESET_UNKNOWN",
	120: "RESET_WATCHDOG",
}

// StatusName returns name of the last status code
func StatusName(status uint32) string {
	if name, ok := statusNames[status]; ok {
		return name
	}
	return fmt.Sprintf("STATUS_%d", status)
}
