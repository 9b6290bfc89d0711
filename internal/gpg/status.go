package gpg

import (
	"bufio"
	"strings"
)

// GPG's --status-fd stream marks machine-readable lines with this prefix.
// The recipient key ID appears as: [GNUPG:] ENC_TO <keyid> <pubkey-algo> <keylen>
const (
	statusPrefix = "[GNUPG:]"
	encToKeyword = "ENC_TO"
)

// ParseRecipient scans a GPG status stream for the first ENC_TO line and
// returns the recipient key ID it names. The boolean is false when no such
// line is present, which makes later re-encryption impossible to target.
func ParseRecipient(status string) (string, bool) {
	scanner := bufio.NewScanner(strings.NewReader(status))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 3 && fields[0] == statusPrefix && fields[1] == encToKeyword {
			return fields[2], true
		}
	}
	return "", false
}
