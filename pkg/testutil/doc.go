// Package testutil builds source trees for tests, on disk or in memory.
//
// Trees are described inline as a map from slash-separated relative path
// to file content, so each test carries its own fixture:
//
//	root := testutil.WriteTree(t, map[string]string{
//		"repatch.yaml":                     config,
//		"integration_test/login_test.dart": source,
//	})
package testutil
