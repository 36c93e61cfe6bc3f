// Package parameters wraps scalar slots of an ops.Array output as
// individually pushable/poppable Parameter values, groups them into a
// named Parameters collection, and lets a group be
// constrained to a multivariate Gaussian via GaussianConstraint. MakeFcn
// builds a safe evaluation closure over a node and a set of named
// parameters, pushing and popping what-if values around each call.
package parameters
