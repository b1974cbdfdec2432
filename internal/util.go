package internal

import (
	"encoding/json"
	"fmt"
	"os"
)

func Pprint(i interface{}) {
	bytes, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(bytes))
}

type Secrets struct {
	Db         DbSecrets `json:"db"`
	SqlitePath string    `json:"sqlitePath"`
}

type DbSecrets struct {
	Host      string `json:"host"`
	User      string `json:"user"`
	Port      string `json:"port"`
	Password  string `json:"password"`
	Database  string `json:"database"`
	EnableSsl bool   `json:"enableSsl"`
}

func (t DbSecrets) ToConnectionStr() string {
	x := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		t.Host, t.Port, t.User, t.Password, t.Database)
	if !t.EnableSsl {
		x += " sslmode=disable"
	}
	return x
}

const defaultSqlitePath = "portfolio.db"

// LoadSecrets reads the deployment secrets file. A missing file is not
// an error: the app falls back to the embedded sqlite store, which is
// the single-user default.
func LoadSecrets() (*Secrets, error) {
	secretsFile := "secrets.json"
	if os.Getenv("BVCFOLIO_ENV") == "dev" {
		secretsFile = "secrets-dev.json"
	} else if os.Getenv("BVCFOLIO_ENV") == "test" {
		secretsFile = "secrets-test.json"
	}
	f, err := os.ReadFile(secretsFile)
	if os.IsNotExist(err) {
		return &Secrets{SqlitePath: defaultSqlitePath}, nil
	} else if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", secretsFile, err)
	}

	secrets := Secrets{}
	err = json.Unmarshal(f, &secrets)
	if err != nil {
		return nil, err
	}
	if secrets.SqlitePath == "" {
		secrets.SqlitePath = defaultSqlitePath
	}

	return &secrets, nil
}

// UsePostgres reports whether the networked store is configured. The
// caller must not care which backing is active beyond this choice.
func (s Secrets) UsePostgres() bool {
	return s.Db.Host != ""
}
