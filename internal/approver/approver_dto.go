package approver

type CandidateResponse struct {
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	RoleName     string `json:"role_name"`
	RoleCategory string `json:"role_category"`
}

func mapToCandidateResponses(candidates []Candidate) []CandidateResponse {
	resp := make([]CandidateResponse, len(candidates))
	for i, c := range candidates {
		resp[i] = CandidateResponse{
			UserID:       c.UserID.String(),
			Name:         c.Name,
			RoleName:     c.RoleName,
			RoleCategory: string(c.Category),
		}
	}
	return resp
}
