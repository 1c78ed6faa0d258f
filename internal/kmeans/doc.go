// Package kmeans implements k-means++ seeding and Lloyd refinement.
//
// Seed picks k initial centroids from a point set by weighted sampling
// proportional to the squared distance to the nearest centroid chosen so
// far. Refine alternates a full assignment pass and a full update pass until
// no centroid moves by eps or more, or maxIter iterations have run.
//
// Both functions validate their arguments before computing any distance.
package kmeans
