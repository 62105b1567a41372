package auth

// CredentialVerifier checks a username/password pair and returns the clinics
// the account may act on. The static directory below is the only production
// implementation today; the interface keeps the token service decoupled from
// where accounts live.
type CredentialVerifier interface {
	Verify(username, password string) (*Principal, error)
}

type staticAccount struct {
	password string
	clinics  []string
}

// StaticDirectory holds the nurse accounts of the two Palermo clinics.
type StaticDirectory struct {
	accounts map[string]staticAccount
}

// NewStaticDirectory returns the built-in account table. Every nurse shares
// the same service password; clinic assignment is what differs per account.
func NewStaticDirectory() *StaticDirectory {
	return &StaticDirectory{
		accounts: map[string]staticAccount{
			"Domenico":   {password: "infermiere", clinics: []string{"pta_centro", "villa_ginestre"}},
			"Antonella":  {password: "infermiere", clinics: []string{"pta_centro", "villa_ginestre"}},
			"Giovanna":   {password: "infermiere", clinics: []string{"pta_centro"}},
			"Oriana":     {password: "infermiere", clinics: []string{"pta_centro"}},
			"G.Domenico": {password: "infermiere", clinics: []string{"pta_centro"}},
		},
	}
}

// Verify implements CredentialVerifier.
func (d *StaticDirectory) Verify(username, password string) (*Principal, error) {
	acct, ok := d.accounts[username]
	if !ok || acct.password != password {
		return nil, ErrInvalidCredentials
	}
	return &Principal{Username: username, Clinics: acct.clinics}, nil
}

// Lookup returns the principal for a known username without a password
// check. Used by the whoami endpoint after token verification.
func (d *StaticDirectory) Lookup(username string) (*Principal, bool) {
	acct, ok := d.accounts[username]
	if !ok {
		return nil, false
	}
	return &Principal{Username: username, Clinics: acct.clinics}, true
}
