package stack

import (
	"github.com/imamik/eksstack/internal/graph"
	"github.com/imamik/eksstack/internal/util/naming"
)

// Output keys, prefixed with the upper-cased app name when registered.
const (
	OutputDatabaseHost         = "DATABASE-HOST"
	OutputDatabasePort         = "DATABASE-PORT-NUMBER"
	OutputDatabaseName         = "DATABASE-NAME"
	OutputDatabaseUser         = "DATABASE-USER"
	OutputDatabaseSecretARN    = "DATABASE-CREDENTIAL-SECRET-ARN"
	OutputFileSystemID         = "EFS-ID"
	OutputCachePrimaryEndpoint = "REDIS-PRIMARY-ENDPOINT-ADDRESS-AND-PORT"
	OutputClusterName          = "EKS-CLUSTER-NAME"
)

// OutputKeys returns the output keys Assemble registers, in order.
func OutputKeys() []string {
	return []string{
		OutputDatabaseHost,
		OutputDatabasePort,
		OutputDatabaseName,
		OutputDatabaseUser,
		OutputDatabaseSecretARN,
		OutputFileSystemID,
		OutputCachePrimaryEndpoint,
		OutputClusterName,
	}
}

// RegisterOutput registers a named value for operators. Parts are literal
// text or references to attributes the resolver reports.
func (s *Stack) RegisterOutput(name, description string, parts ...graph.Part) error {
	return s.b.AddOutput(graph.Output{Name: name, Description: description, Parts: parts})
}

// registerOutputs registers the fixed operator outputs of the stack.
func (s *Stack) registerOutputs(c Cluster, db Database, fs FileSystem, cache Cache) error {
	app := s.cfg.App
	outputs := []struct {
		key         string
		description string
		parts       []graph.Part
	}{
		{OutputDatabaseHost, "Database endpoint address", []graph.Part{graph.Ref(db.Handle, "Endpoint.Address")}},
		{OutputDatabasePort, "Database endpoint port", []graph.Part{graph.Ref(db.Handle, "Endpoint.Port")}},
		{OutputDatabaseName, "Database name", []graph.Part{graph.Lit(s.cfg.Database.Name)}},
		{OutputDatabaseUser, "Database administrator user", []graph.Part{graph.Lit(s.cfg.Database.Username)}},
		{OutputDatabaseSecretARN, "Secret holding the generated database password", []graph.Part{graph.Ref(db.Secret, "Arn")}},
		{OutputFileSystemID, "Shared file system ID", []graph.Part{graph.Ref(fs.Handle, "FileSystemId")}},
		{OutputCachePrimaryEndpoint, "Cache primary endpoint as address:port", []graph.Part{
			graph.Ref(cache.Handle, "PrimaryEndPoint.Address"),
			graph.Lit(":"),
			graph.Ref(cache.Handle, "PrimaryEndPoint.Port"),
		}},
		{OutputClusterName, "EKS cluster name", []graph.Part{graph.Ref(c.Handle, "Name")}},
	}

	for _, o := range outputs {
		if err := s.RegisterOutput(naming.Output(app, o.key), o.description, o.parts...); err != nil {
			return err
		}
	}
	return nil
}
