package service

// DefaultWorkers bounds parallel log parsing when Options leaves it unset
const DefaultWorkers = 4
