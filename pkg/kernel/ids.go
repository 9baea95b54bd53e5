package kernel

import "github.com/google/uuid"

type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func GenerateJobID() JobID     { return JobID(uuid.NewString()) }
func (j JobID) String() string { return string(j) }
func (j JobID) IsEmpty() bool  { return string(j) == "" }

type CandidateID string

func NewCandidateID(id string) CandidateID { return CandidateID(id) }
func GenerateCandidateID() CandidateID     { return CandidateID(uuid.NewString()) }
func (c CandidateID) String() string       { return string(c) }
func (c CandidateID) IsEmpty() bool        { return string(c) == "" }

type AnalysisID string

func NewAnalysisID(id string) AnalysisID { return AnalysisID(id) }
func GenerateAnalysisID() AnalysisID     { return AnalysisID(uuid.NewString()) }
func (a AnalysisID) String() string      { return string(a) }
func (a AnalysisID) IsEmpty() bool       { return string(a) == "" }
