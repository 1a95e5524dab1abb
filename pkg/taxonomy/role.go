package taxonomy

import (
	"github.com/aws/aws-sdk-go-v2/aws/arn"
)

const (
	deploymentRolePartition = "aws"
	deploymentRoleService   = "iam"
	deploymentRoleResource  = "role/deployment-role"
)

// DeriveRoleArn returns the deployment role ARN for account,
// arn:aws:iam::<account>:role/deployment-role. The account is not validated.
func DeriveRoleArn(account string) string {
	return arn.ARN{
		Partition: deploymentRolePartition,
		Service:   deploymentRoleService,
		AccountID: account,
		Resource:  deploymentRoleResource,
	}.String()
}
