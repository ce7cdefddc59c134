// Package harness runs UI test scenarios against several browser engines.
//
// For each enabled engine a Session finds the automation driver on disk (falling back to a
// second location once), starts the engine, runs the scenario and always shuts the engine down
// again. When a scenario fails and logging is enabled, a Recorder saves a screenshot and adds an
// ErrorRecord to the suite's ErrorLog; at the end of the suite the Harness renders all records
// into a single HTML report.
package harness
