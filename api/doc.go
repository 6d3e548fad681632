// File: api/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Public contracts for hioload-jobs. The api package defines the small
// interface surface the scheduler exposes to its collaborators (asset
// pipelines, frame graphs, parallel-for callers) plus the shared error
// vocabulary. Implementations live in jobs/, pool/ and affinity/.
package api
