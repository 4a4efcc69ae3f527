/*
Package alphtest contains a framework for automated contract testing against
a running node. It can be used to implement tests for Ralph contracts in Go
using regular Go conventions.

Usually it's used like this:
  - a client for the node is created with NewClient (tests are skipped if
    the node can't be reached)
  - a funded signer is obtained with TestWallet
  - an Executor is created for the client and the signer
  - target contracts and scripts are compiled with CompileContract and
    CompileScript
  - methods are simulated with TestMethod and TestPrivateMethod, events are
    checked with CheckEvents
  - contracts are deployed with DeployContract and scripts are executed with
    ExecuteScript

Executor methods fail the test on any error, lower-level contract and actor
APIs can be used directly for anything else.
*/
package alphtest
